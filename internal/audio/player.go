// Package audio plays a short tone for each game event.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/tomz197/eggs/internal/config"
	"github.com/tomz197/eggs/internal/game"
	"go.uber.org/zap"
)

// Player is a game.Feedback sink. Until Init succeeds it stays silent.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	volume  float64
	enabled bool
	ready   bool
	mixer   *beep.Mixer
	log     *zap.Logger
}

var _ game.Feedback = (*Player)(nil)

func NewPlayer(cfg config.AudioConfig, log *zap.Logger) *Player {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &Player{
		rate:    beep.SampleRate(rate),
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
		mixer:   &beep.Mixer{},
		log:     log,
	}
}

// Init opens the audio device. A failure leaves the player silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		p.log.Warn("audio unavailable, running silent", zap.Error(err))
		return err
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Close stops playback.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.ready = false
}

// SetEnabled toggles sound without releasing the device.
func (p *Player) SetEnabled(on bool) {
	p.mu.Lock()
	p.enabled = on
	p.mu.Unlock()
}

func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Notify implements game.Feedback.
func (p *Player) Notify(e game.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || !p.enabled {
		return
	}
	s := Cue(e, p.rate)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(newVolume(s, p.volume))
	speaker.Unlock()
}
