package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/tomz197/eggs/internal/game"
)

// tone is a sine wave with an exponential decay, enough for the short
// pops and chimes the game uses.
type tone struct {
	freq  float64
	rate  beep.SampleRate
	pos   int
	total int
	decay float64 // 1/s
}

// NewTone returns a decaying sine of the given frequency and length.
func NewTone(freq float64, d time.Duration, decay float64, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:  freq,
		rate:  rate,
		total: rate.N(d),
		decay: decay,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		sec := float64(t.pos) / float64(t.rate)
		// 5ms attack keeps the start from clicking
		attack := math.Min(sec/0.005, 1)
		v := attack * math.Exp(-t.decay*sec) * math.Sin(2*math.Pi*t.freq*sec)

		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// math.Log2(0) is -Inf, so zero volume is silenced instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Cue returns the sound for a game event, or nil for events without one.
func Cue(e game.Event, rate beep.SampleRate) beep.Streamer {
	switch e {
	case game.EventEggTap:
		return NewTone(880, 80*time.Millisecond, 30, rate)
	case game.EventEggHatch:
		return NewTone(440, 150*time.Millisecond, 15, rate)
	case game.EventLifeLost:
		return NewTone(220, 300*time.Millisecond, 6, rate)
	case game.EventCombo:
		return beep.Mix(
			newVolume(NewTone(1200, 120*time.Millisecond, 18, rate), 0.7),
			newVolume(NewTone(2400, 120*time.Millisecond, 25, rate), 0.3),
		)
	case game.EventSpecialEgg:
		return beep.Seq(
			NewTone(1500, 60*time.Millisecond, 20, rate),
			NewTone(2000, 90*time.Millisecond, 20, rate),
		)
	case game.EventHeartGained:
		return beep.Seq(
			NewTone(660, 80*time.Millisecond, 10, rate),
			NewTone(880, 120*time.Millisecond, 10, rate),
		)
	case game.EventGameOver:
		notes := []float64{440, 392, 349, 330}
		streamers := make([]beep.Streamer, len(notes))
		for i, f := range notes {
			streamers[i] = NewTone(f, gameOverNote, 4, rate)
		}
		return beep.Seq(streamers...)
	default:
		return nil
	}
}

const gameOverNote = 200 * time.Millisecond
