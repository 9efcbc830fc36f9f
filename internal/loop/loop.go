// Package loop runs one player's game in a terminal: input, session
// ticks and rendering at a fixed frame rate, plus the menu and settings
// pages around it.
package loop

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/tomz197/eggs/internal/draw"
	"github.com/tomz197/eggs/internal/game"
	"github.com/tomz197/eggs/internal/input"
	"github.com/tomz197/eggs/internal/loop/config"
	"github.com/tomz197/eggs/internal/object"
	"github.com/tomz197/eggs/internal/persist"
	"go.uber.org/zap"
)

// Sound is a feedback sink that can be muted, such as *audio.Player.
type Sound interface {
	game.Feedback
	SetEnabled(on bool)
}

// Options configures a client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Store        persist.Store // required
	Sound        Sound         // nil plays no sound
	Log          *zap.Logger
	Seed         int64 // 0 seeds from the clock
	FPS          int
	Player       string
	// ShutdownGrace is how long the shutdown notice stays up after the
	// context is cancelled. Zero exits at once.
	ShutdownGrace time.Duration
}

// Client handles rendering and input for a single terminal.
type Client struct {
	state        *ClientState
	session      *game.Session
	scene        *Scene
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	store        persist.Store
	sound        Sound
	log          *zap.Logger
	frameTime    time.Duration
	player       string
	grace        time.Duration
}

// Run plays until the player quits, the input ends or ctx is cancelled.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	c, err := NewClient(r, w, opts)
	if err != nil {
		return err
	}
	return c.Run(ctx)
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r io.Reader, w io.Writer, opts Options) (*Client, error) {
	if opts.Store == nil {
		return nil, errors.New("loop: no store")
	}
	c := newClient(w, opts)
	c.inputStream = input.StartStream(bufio.NewReader(r))
	return c, nil
}

func newClient(w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = config.ClientTargetFPS
	}

	rng := rand.New(rand.NewSource(seed))
	scene := NewScene(rand.New(rand.NewSource(rng.Int63())))

	feedback := game.Feedbacks{scene}
	if opts.Sound != nil {
		feedback = append(feedback, opts.Sound)
	}
	session := game.NewSession(game.Options{
		Field: object.Field{
			Width:       config.ViewWidth,
			Height:      config.ViewHeight,
			EdgePadding: config.EdgePadding,
			TopBand:     config.TopBand,
		},
		Rand:        rng,
		Renderer:    scene,
		Feedback:    feedback,
		Persistence: opts.Store,
		Log:         log,
	})

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	c := &Client{
		state:        NewClientState(),
		session:      session,
		scene:        scene,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		termSizeFunc: termSizeFunc,
		store:        opts.Store,
		sound:        opts.Sound,
		log:          log.With(zap.String("player", opts.Player)),
		frameTime:    time.Second / time.Duration(fps),
		player:       opts.Player,
		grace:        opts.ShutdownGrace,
	}
	c.state.cursor = object.Point{X: config.ViewWidth / 2, Y: config.ViewHeight / 2}
	c.loadProfile()
	return c
}

// Run starts the client loop. Blocks until the client quits.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer func() {
		draw.DisableMouse(c.writer)
		draw.ShowCursor(c.writer)
	}()
	draw.ClearScreen(c.writer)

	c.log.Info("client started")
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.checkShutdown(ctx)
		c.processInput()
		c.updateScreen()
		c.update(c.state.delta.Seconds())

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < c.frameTime {
			time.Sleep(c.frameTime - elapsed)
		}
	}

	c.scene.ClearEffects()
	draw.ClearScreen(c.writer)
	c.log.Info("client stopped",
		zap.Int("high_score", c.session.HighScore()),
		zap.Int("games_played", c.state.Stats.GamesPlayed),
	)
	return nil
}

// checkShutdown switches to the shutdown notice once ctx is done.
func (c *Client) checkShutdown(ctx context.Context) {
	if c.state.Screen == ScreenShutdown {
		return
	}
	select {
	case <-ctx.Done():
		if c.grace <= 0 {
			c.state.Running = false
			return
		}
		c.state.Screen = ScreenShutdown
		c.state.shutdownTimer = c.grace.Seconds()
	default:
	}
}

// processInput reads this frame's input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)
	c.trackActivity()
}

func (c *Client) trackActivity() {
	switch idle := time.Since(c.state.lastInput).Seconds(); {
	case c.state.Input.Any():
		c.state.lastInput = time.Now()
		c.state.isInactive = false
	case idle > config.InactivityDisconnectUser:
		c.log.Info("disconnecting inactive client")
		c.state.Running = false
	case idle > config.InactivityWarnUser:
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.Resize(renderWidth, renderHeight)
		c.canvas.SetOffset(offsetCol, offsetRow)
		c.chunkWriter.SetOffset(offsetCol, offsetRow)
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// update advances the current screen by dt seconds.
func (c *Client) update(dt float64) {
	if !c.state.Running {
		return
	}
	c.scene.Update(dt)
	if c.state.noticeTimer > 0 {
		c.state.noticeTimer -= dt
	}

	switch c.state.Screen {
	case ScreenMenu:
		c.updateMenu()
	case ScreenSettings:
		c.updateSettings()
	case ScreenPlaying:
		c.updatePlaying(dt)
	case ScreenShutdown:
		c.state.shutdownTimer -= dt
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
	}
}

// loadProfile reads the player's settings and stats and applies the
// settings to the feedback sinks.
func (c *Client) loadProfile() {
	if s, err := c.store.Settings(); err != nil {
		c.log.Warn("load settings", zap.Error(err))
	} else {
		c.state.Settings = s
	}
	c.refreshStats()
	c.applySettings()
}

func (c *Client) refreshStats() {
	st, err := c.store.Stats()
	if err != nil {
		c.log.Warn("load stats", zap.Error(err))
		return
	}
	c.state.Stats = st
}

func (c *Client) applySettings() {
	if c.sound != nil {
		c.sound.SetEnabled(c.state.Settings.SoundEnabled)
	}
	c.scene.SetHaptics(c.state.Settings.HapticsEnabled)
}

func (c *Client) saveSettings() {
	c.applySettings()
	if err := c.store.SaveSettings(c.state.Settings); err != nil {
		c.log.Warn("save settings", zap.Error(err))
	}
}
