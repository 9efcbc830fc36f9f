package object

import "math/rand"

// EggType identifies an egg variant.
type EggType int

const (
	EggNormal EggType = iota
	EggGolden         // worth 5x points
	EggSpeed          // slows every other egg down
	EggHeart          // restores a life
	EggBomb           // costs a life when tapped
)

// AllEggTypes lists the catalog in iteration order. Weighted draws walk
// this order, so ties always resolve the same way for a given seed.
var AllEggTypes = []EggType{EggNormal, EggGolden, EggSpeed, EggHeart, EggBomb}

// SpecialUnlockTime is the game time (seconds) after which non-normal
// eggs may spawn.
const SpecialUnlockTime = 5.0

type eggTypeInfo struct {
	name       string
	weight     int
	multiplier int
}

var eggTypes = map[EggType]eggTypeInfo{
	EggNormal: {name: "normal", weight: 100, multiplier: 1},
	EggGolden: {name: "golden", weight: 8, multiplier: 5},
	EggSpeed:  {name: "speed", weight: 5, multiplier: 2},
	EggHeart:  {name: "heart", weight: 3, multiplier: 0},
	EggBomb:   {name: "bomb", weight: 6, multiplier: 0},
}

// SpawnWeight returns the relative likelihood of the type among the
// eligible types.
func (t EggType) SpawnWeight() int {
	return eggTypes[t].weight
}

// PointMultiplier returns the factor applied to the combo multiplier when
// the egg is tapped.
func (t EggType) PointMultiplier() int {
	return eggTypes[t].multiplier
}

// IsSpecial reports whether the type is anything but a normal egg.
func (t EggType) IsSpecial() bool {
	return t != EggNormal
}

func (t EggType) String() string {
	if info, ok := eggTypes[t]; ok {
		return info.name
	}
	return "unknown"
}

var normalOnly = []EggType{EggNormal}

// EligibleTypes returns the types that may spawn at the given game time.
func EligibleTypes(gameTime float64) []EggType {
	if gameTime > SpecialUnlockTime {
		return AllEggTypes
	}
	return normalOnly
}

// RandomType draws a type from the eligible set, weighted by SpawnWeight.
// An empty or zero-weight set yields EggNormal.
func RandomType(rng *rand.Rand, eligible []EggType) EggType {
	total := 0
	for _, t := range AllEggTypes {
		if containsType(eligible, t) {
			total += t.SpawnWeight()
		}
	}
	if total <= 0 {
		return EggNormal
	}

	draw := rng.Intn(total)
	cumulative := 0
	for _, t := range AllEggTypes {
		if !containsType(eligible, t) {
			continue
		}
		cumulative += t.SpawnWeight()
		if draw < cumulative {
			return t
		}
	}
	return EggNormal
}

func containsType(types []EggType, t EggType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
