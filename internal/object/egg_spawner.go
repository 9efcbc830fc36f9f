package object

import (
	"math"
	"math/rand"
)

// Difficulty curves. All values are seconds; t is game time.
const (
	spawnIntervalStart = 3.0
	spawnIntervalDecay = 0.1
	spawnIntervalFloor = 0.5

	hatchMinStart = 3.0
	hatchMinDecay = 0.15
	hatchMinFloor = 0.5

	hatchMaxStart = 7.0
	hatchMaxDecay = 0.2
	hatchMaxFloor = 1.0
)

// SpawnInterval returns the seconds between spawns at game time t.
func SpawnInterval(t float64) float64 {
	return math.Max(spawnIntervalFloor, spawnIntervalStart-t*spawnIntervalDecay)
}

// HatchRange returns the bounds hatch durations are drawn from at game
// time t. The two curves cross at high t, so the bounds are ordered here
// rather than trusted.
func HatchRange(t float64) (minHatch, maxHatch float64) {
	baseMin := math.Max(hatchMinFloor, hatchMinStart-t*hatchMinDecay)
	baseMax := math.Max(hatchMaxFloor, hatchMaxStart-t*hatchMaxDecay)
	return math.Min(baseMin, baseMax), math.Max(baseMin, baseMax)
}

// EggSpawner creates eggs at a pace set by game time.
type EggSpawner struct {
	field     Field
	rng       *rand.Rand
	nextID    uint64
	lastSpawn float64
}

// NewEggSpawner creates a spawner for the given field.
func NewEggSpawner(field Field, rng *rand.Rand) *EggSpawner {
	return &EggSpawner{
		field:  field,
		rng:    rng,
		nextID: 1,
	}
}

// Reset rewinds the spawn clock. Egg IDs keep increasing so they stay
// unique across restarts.
func (s *EggSpawner) Reset() {
	s.lastSpawn = 0
}

// LastSpawnTime returns the game time of the most recent spawn.
func (s *EggSpawner) LastSpawnTime() float64 {
	return s.lastSpawn
}

// Due reports whether a spawn should happen at game time t.
func (s *EggSpawner) Due(t float64) bool {
	return t-s.lastSpawn >= SpawnInterval(t)
}

// Update spawns an egg if one is due, returning nil otherwise.
func (s *EggSpawner) Update(t float64) *Egg {
	if !s.Due(t) {
		return nil
	}
	s.lastSpawn = t
	return s.Spawn(t)
}

// Spawn creates an egg at game time t regardless of the schedule.
func (s *EggSpawner) Spawn(t float64) *Egg {
	minHatch, maxHatch := HatchRange(t)

	egg := &Egg{
		ID:        s.nextID,
		Type:      RandomType(s.rng, EligibleTypes(t)),
		Pos:       s.field.RandomPosition(s.rng, EggHitRadius),
		SpawnTime: t,
		HatchTime: uniform(s.rng, minHatch, maxHatch),
	}
	s.nextID++
	return egg
}
