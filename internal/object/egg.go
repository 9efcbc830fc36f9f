package object

import (
	"math"

	"github.com/tomz197/eggs/internal/physics"
)

// Egg dimensions in logical units.
const (
	EggWidth  = 8.0
	EggHeight = 10.0
)

// EggHitRadius is the tap radius around an egg's center.
var EggHitRadius = math.Max(EggWidth/2, EggHeight/2)

// Tier is the presentation urgency of a live egg.
type Tier int

const (
	TierFresh Tier = iota
	TierWarning
	TierCritical
)

func (t Tier) String() string {
	switch t {
	case TierFresh:
		return "fresh"
	case TierWarning:
		return "warning"
	case TierCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// TierFor maps hatch progress (1 = just spawned, 0 = hatching) to a tier.
func TierFor(progress float64) Tier {
	switch {
	case progress >= 0.6:
		return TierFresh
	case progress >= 0.3:
		return TierWarning
	default:
		return TierCritical
	}
}

// Egg is a single egg on the field.
//
// Tapped and Hatched are terminal and mutually exclusive: once either is
// set the egg is inert and every mutator becomes a no-op.
type Egg struct {
	ID        uint64
	Type      EggType
	Pos       Point
	SpawnTime float64 // game time at creation
	HatchTime float64 // seconds from spawn until hatch
	Tapped    bool
	Hatched   bool
}

// IsLive reports whether the egg can still be tapped or hatch.
func (e *Egg) IsLive() bool {
	return !e.Tapped && !e.Hatched
}

// Remaining returns the seconds left before the egg hatches.
func (e *Egg) Remaining(gameTime float64) float64 {
	return e.HatchTime - (gameTime - e.SpawnTime)
}

// Progress returns remaining/hatchTime clamped to [0, 1].
func (e *Egg) Progress(gameTime float64) float64 {
	if e.HatchTime <= 0 {
		return 0
	}
	p := e.Remaining(gameTime) / e.HatchTime
	return math.Max(0, math.Min(1, p))
}

// MarkTapped resolves the egg as tapped. Returns false if it was not live.
func (e *Egg) MarkTapped() bool {
	if !e.IsLive() {
		return false
	}
	e.Tapped = true
	return true
}

// MarkHatched resolves the egg as hatched. Returns false if it was not live.
func (e *Egg) MarkHatched() bool {
	if !e.IsLive() {
		return false
	}
	e.Hatched = true
	return true
}

// ExtendHatch pushes the hatch deadline back by d seconds.
func (e *Egg) ExtendHatch(d float64) {
	if !e.IsLive() || d <= 0 {
		return
	}
	e.HatchTime += d
}

// Contains reports whether p is within the egg's hit radius.
func (e *Egg) Contains(p Point) bool {
	return physics.PointInCircle(p.X, p.Y, e.Pos.X, e.Pos.Y, EggHitRadius)
}
