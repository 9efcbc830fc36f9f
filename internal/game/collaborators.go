package game

import "github.com/tomz197/eggs/internal/object"

// VisualHandle identifies a visual created by a Renderer.
type VisualHandle int

// Renderer owns every egg visual. The session never draws.
type Renderer interface {
	SpawnEggVisual(t object.EggType, pos object.Point) VisualHandle
	RemoveVisual(h VisualHandle)
	SetVisualTint(h VisualHandle, tier object.Tier)
}

// EffectRenderer is optionally implemented by a Renderer that can play
// one-shot effects such as tap bursts.
type EffectRenderer interface {
	PlayEffect(kind Effect, pos object.Point, combo int)
}

// Feedback receives fire-and-forget notifications (sound, haptics).
type Feedback interface {
	Notify(e Event)
}

// Persistence stores the high score and end-of-game statistics.
// Errors are logged by the session and never interrupt play.
type Persistence interface {
	LoadHighScore() (int, error)
	UpdateHighScore(score int) (bool, error)
	RecordGameEnd(score, eggsTapped, maxCombo int) error
}

// Feedbacks fans a notification out to every sink in order.
type Feedbacks []Feedback

// Notify implements Feedback.
func (fs Feedbacks) Notify(e Event) {
	for _, f := range fs {
		if f != nil {
			f.Notify(e)
		}
	}
}

type nopRenderer struct{}

func (nopRenderer) SpawnEggVisual(object.EggType, object.Point) VisualHandle { return 0 }
func (nopRenderer) RemoveVisual(VisualHandle)                                {}
func (nopRenderer) SetVisualTint(VisualHandle, object.Tier)                  {}

type nopFeedback struct{}

func (nopFeedback) Notify(Event) {}

type nopPersistence struct{}

func (nopPersistence) LoadHighScore() (int, error)       { return 0, nil }
func (nopPersistence) UpdateHighScore(int) (bool, error) { return false, nil }
func (nopPersistence) RecordGameEnd(int, int, int) error { return nil }
