package loop

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/eggs/internal/draw"
	"github.com/tomz197/eggs/internal/game"
	"github.com/tomz197/eggs/internal/object"
)

func TestSceneVisuals(t *testing.T) {
	s := NewScene(rand.New(rand.NewSource(1)))
	a := s.SpawnEggVisual(object.EggNormal, object.Point{X: 10, Y: 20})
	b := s.SpawnEggVisual(object.EggBomb, object.Point{X: 30, Y: 40})
	if a == 0 || a == b {
		t.Fatalf("handles %d, %d are not distinct and non-zero", a, b)
	}

	s.SetVisualTint(a, object.TierCritical)
	if s.eggs[a].tier != object.TierCritical {
		t.Fatalf("tint not applied")
	}
	s.RemoveVisual(a)
	s.SetVisualTint(a, object.TierWarning) // removed handles are ignored
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if s.henTarget != 30 {
		t.Fatalf("hen target = %v, want the newest egg's x", s.henTarget)
	}
}

func TestSceneHaptics(t *testing.T) {
	s := NewScene(rand.New(rand.NewSource(1)))
	s.Notify(game.EventEggTap)
	if s.TakeBell() || s.ShakeOffset() != 0 {
		t.Fatalf("light event rang the bell")
	}

	s.Notify(game.EventLifeLost)
	if s.ShakeOffset() == 0 {
		t.Fatalf("no shake after life lost")
	}
	if !s.TakeBell() || s.TakeBell() {
		t.Fatalf("bell should ring exactly once")
	}
	s.Update(1)
	if s.ShakeOffset() != 0 {
		t.Fatalf("shake never ends")
	}

	s.SetHaptics(false)
	s.Notify(game.EventGameOver)
	if s.TakeBell() || s.ShakeOffset() != 0 {
		t.Fatalf("haptics off but bell or shake fired")
	}
}

func TestSceneEffectsExpire(t *testing.T) {
	s := NewScene(rand.New(rand.NewSource(1)))
	s.PlayEffect(game.EffectExplosion, object.Point{X: 50, Y: 50}, 0)
	s.PlayEffect(game.EffectCombo, object.Point{X: 50, Y: 50}, 3)
	if len(s.particles) != bursts[game.EffectExplosion].Count+3*bursts[game.EffectCombo].Count {
		t.Fatalf("particles = %d", len(s.particles))
	}
	if len(s.popups) != 1 || s.popups[0].text != "x3 COMBO" {
		t.Fatalf("popups = %+v", s.popups)
	}

	for i := 0; i < 20; i++ {
		s.Update(0.1)
	}
	if len(s.particles) != 0 || len(s.popups) != 0 {
		t.Fatalf("effects left after 2s: %d particles, %d popups", len(s.particles), len(s.popups))
	}
}

func TestHenGlidesToTarget(t *testing.T) {
	s := NewScene(rand.New(rand.NewSource(1)))
	s.SpawnEggVisual(object.EggNormal, object.Point{X: s.henX + 9, Y: 40})
	s.Update(0.05)
	if s.henX == s.henTarget {
		t.Fatalf("hen jumped instead of gliding")
	}
	s.Update(1)
	if s.henX != s.henTarget {
		t.Fatalf("hen at %v, want %v", s.henX, s.henTarget)
	}
}

func TestEggColors(t *testing.T) {
	if eggColor(object.EggNormal, object.TierFresh) == eggColor(object.EggNormal, object.TierCritical) {
		t.Fatalf("normal eggs do not change colour with urgency")
	}
	seen := map[any]object.EggType{}
	for _, typ := range object.AllEggTypes {
		c := eggColor(typ, object.TierFresh)
		if prev, ok := seen[c]; ok {
			t.Fatalf("%s and %s share a colour", prev, typ)
		}
		seen[c] = typ
	}
}

func TestShakeShift(t *testing.T) {
	s := NewScene(rand.New(rand.NewSource(1)))
	c := draw.NewScaledCanvas(60, 20, 120, 80)
	if got := s.shakeShift(c); got != 0 {
		t.Fatalf("shift without shake = %v, want 0", got)
	}

	s.Notify(game.EventLifeLost)
	if got := math.Abs(s.shakeShift(c)); got != 2 {
		t.Fatalf("|shift| = %v, want one column (2)", got)
	}

	// A canvas that never learned its size must not poison positions.
	if got := s.shakeShift(&draw.Canvas{}); got != 0 || math.IsNaN(got) {
		t.Fatalf("shift on unsized canvas = %v, want 0", got)
	}
}
