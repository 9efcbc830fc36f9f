package loop

import (
	"time"

	"github.com/tomz197/eggs/internal/game"
	"github.com/tomz197/eggs/internal/input"
	"github.com/tomz197/eggs/internal/object"
	"github.com/tomz197/eggs/internal/persist"
)

// Screen is the page a client is looking at.
type Screen int

const (
	ScreenMenu     Screen = iota // Title and stats
	ScreenPlaying                // A session, including its game-over overlay
	ScreenSettings               // Sound, haptics, resets
	ScreenShutdown               // Server is shutting down
)

func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenPlaying:
		return "playing"
	case ScreenSettings:
		return "settings"
	case ScreenShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ClientState holds per-client presentation state. Game rules live in
// the session.
type ClientState struct {
	Input     input.Input
	Screen    Screen
	Running   bool
	Settings  persist.Settings
	Stats     persist.Stats
	delta     time.Duration
	lastInput time.Time

	// Detects transitions that need a full terminal clear.
	prevScreen  Screen
	prevPhase   game.Phase
	isInactive  bool
	wasInactive bool

	menuIndex     int
	settingsIndex int
	notice        string // One-line confirmation on the settings screen
	noticeTimer   float64

	cursor        object.Point // Keyboard crosshair
	cursorVisible bool
	sinceGameOver float64
	tutorialTimer float64
	shutdownTimer float64
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Screen:     ScreenMenu,
		prevScreen: -1,
		Running:    true,
		Settings:   persist.DefaultSettings(),
		lastInput:  time.Now(),
	}
}
