package object

import (
	"math/rand"
	"testing"
)

func TestCatalogWeights(t *testing.T) {
	total := 0
	for _, typ := range AllEggTypes {
		if typ.SpawnWeight() <= 0 {
			t.Fatalf("%v weight = %d, want > 0", typ, typ.SpawnWeight())
		}
		if typ.PointMultiplier() < 0 {
			t.Fatalf("%v multiplier = %d, want >= 0", typ, typ.PointMultiplier())
		}
		total += typ.SpawnWeight()
	}
	if total != 122 {
		t.Fatalf("total weight = %d, want 122", total)
	}
}

func TestEligibleTypes(t *testing.T) {
	tests := []struct {
		gameTime float64
		want     int
	}{
		{0, 1},
		{4.9, 1},
		{SpecialUnlockTime, 1},
		{5.01, len(AllEggTypes)},
		{60, len(AllEggTypes)},
	}
	for _, tt := range tests {
		if got := EligibleTypes(tt.gameTime); len(got) != tt.want {
			t.Fatalf("EligibleTypes(%v) = %v, want %d types", tt.gameTime, got, tt.want)
		}
	}
	if EligibleTypes(0)[0] != EggNormal {
		t.Fatalf("early type is not normal")
	}
}

func TestRandomTypeOnlyNormalEarly(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if got := RandomType(rng, EligibleTypes(3)); got != EggNormal {
			t.Fatalf("draw %d = %v, want normal", i, got)
		}
	}
}

func TestRandomTypeIsDeterministic(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		if x, y := RandomType(a, AllEggTypes), RandomType(b, AllEggTypes); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestRandomTypeFollowsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const draws = 122000
	counts := make(map[EggType]int)
	for i := 0; i < draws; i++ {
		counts[RandomType(rng, AllEggTypes)]++
	}
	for _, typ := range AllEggTypes {
		want := float64(draws) * float64(typ.SpawnWeight()) / 122
		got := float64(counts[typ])
		if got < want*0.85 || got > want*1.15 {
			t.Fatalf("%v drawn %v times, want about %v", typ, got, want)
		}
	}
}

func TestRandomTypeSubset(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	subset := []EggType{EggHeart, EggBomb}
	for i := 0; i < 500; i++ {
		got := RandomType(rng, subset)
		if got != EggHeart && got != EggBomb {
			t.Fatalf("draw %d = %v, want heart or bomb", i, got)
		}
	}
	if got := RandomType(rng, nil); got != EggNormal {
		t.Fatalf("empty set draw = %v, want normal", got)
	}
}
