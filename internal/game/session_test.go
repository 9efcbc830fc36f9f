package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/eggs/internal/object"
)

func TestFirstTickOnlySyncsClock(t *testing.T) {
	s := NewSession(Options{Field: testField, Rand: rand.New(rand.NewSource(1))})

	s.Tick(100)
	if got := s.GameTime(); got != 0 {
		t.Fatalf("game time after sync tick = %v, want 0", got)
	}
	s.Tick(0.25)
	if got := s.GameTime(); got != 0.25 {
		t.Fatalf("game time = %v, want 0.25", got)
	}
}

func TestTickIgnoresBadDeltas(t *testing.T) {
	h := newHarness(t, 1)
	h.s.Tick(0.5)

	h.s.Tick(-3)
	h.s.Tick(math.NaN())
	if got := h.s.GameTime(); got != 0.5 {
		t.Fatalf("game time = %v, want 0.5", got)
	}
}

func TestNoPrematureSpawn(t *testing.T) {
	h := newHarness(t, 7)

	h.s.Tick(0.6)
	if n := len(h.s.Eggs()); n != 0 {
		t.Fatalf("eggs after 0.6s = %d, want 0", n)
	}

	// spawnInterval(t) = 3 - 0.1t, so the first spawn lands at t = 30/11.
	firstSpawn := 30.0 / 11
	for len(h.s.Eggs()) == 0 {
		if h.s.GameTime() > 5 {
			t.Fatalf("no egg spawned by t=%v", h.s.GameTime())
		}
		h.s.Tick(0.05)
	}
	if h.s.GameTime() < firstSpawn-1e-9 {
		t.Fatalf("first spawn at t=%v, want >= %v", h.s.GameTime(), firstSpawn)
	}
	eggs := h.s.Eggs()
	if len(eggs) != 1 {
		t.Fatalf("eggs = %d, want 1", len(eggs))
	}
	if eggs[0].Type != object.EggNormal {
		t.Fatalf("first egg type = %v, want normal", eggs[0].Type)
	}
	if h.s.LastSpawnTime() != h.s.GameTime() {
		t.Fatalf("last spawn = %v, want %v", h.s.LastSpawnTime(), h.s.GameTime())
	}
	if len(h.renderer.live) != 1 {
		t.Fatalf("live visuals = %d, want 1", len(h.renderer.live))
	}
}

func TestMissHatchesEgg(t *testing.T) {
	h := newHarness(t, 1)
	egg := h.place(object.EggNormal, 60, 40, 1.0)

	h.s.Tick(0.5)
	if !egg.IsLive() || h.s.Lives() != InitialLives {
		t.Fatalf("egg hatched early: live=%v lives=%d", egg.IsLive(), h.s.Lives())
	}

	h.s.Tick(0.5)
	if !egg.Hatched || egg.Tapped {
		t.Fatalf("egg flags tapped=%v hatched=%v, want hatched only", egg.Tapped, egg.Hatched)
	}
	if got := h.s.Lives(); got != InitialLives-1 {
		t.Fatalf("lives = %d, want %d", got, InitialLives-1)
	}
	if n := len(h.s.Eggs()); n != 0 {
		t.Fatalf("eggs after hatch = %d, want 0", n)
	}
	if h.feedback.count(EventEggHatch) != 1 || h.feedback.count(EventLifeLost) != 1 {
		t.Fatalf("events = %v", h.feedback.events)
	}
	if len(h.renderer.live) != 0 {
		t.Fatalf("visual not removed")
	}
}

func TestThreeMissesEndGame(t *testing.T) {
	h := newHarness(t, 1)
	scorer := h.place(object.EggNormal, 20, 30, 100)
	h.place(object.EggNormal, 60, 40, 0.5)
	h.place(object.EggNormal, 80, 50, 1.0)
	h.place(object.EggNormal, 100, 60, 1.5)

	if out := h.s.Tap(scorer.Pos); out.Result != TapHit || out.Points != 1 {
		t.Fatalf("tap = %+v, want hit worth 1", out)
	}

	for i := 0; i < 3; i++ {
		h.s.Tick(0.5)
	}
	if h.s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", h.s.Phase())
	}
	if h.s.Lives() != 0 {
		t.Fatalf("lives = %d, want 0", h.s.Lives())
	}
	if len(h.store.updateCalls) != 1 || h.store.updateCalls[0] != 1 {
		t.Fatalf("UpdateHighScore calls = %v, want [1]", h.store.updateCalls)
	}
	if h.store.recordCalls != 1 || h.store.lastRecord != [3]int{1, 1, 1} {
		t.Fatalf("RecordGameEnd calls=%d last=%v", h.store.recordCalls, h.store.lastRecord)
	}
	if !h.s.NewHighScore() || h.s.HighScore() != 1 {
		t.Fatalf("new high score = %v high = %d", h.s.NewHighScore(), h.s.HighScore())
	}

	// Nothing fires twice.
	for i := 0; i < 5; i++ {
		h.s.Tick(1)
		h.s.Tap(object.Point{X: 50, Y: 50})
	}
	if len(h.store.updateCalls) != 1 || h.store.recordCalls != 1 {
		t.Fatalf("game over reported again: update=%v record=%d", h.store.updateCalls, h.store.recordCalls)
	}
	if h.feedback.count(EventGameOver) != 1 {
		t.Fatalf("gameOver events = %d, want 1", h.feedback.count(EventGameOver))
	}
}

func TestGameOverFreezesSession(t *testing.T) {
	h := newHarness(t, 1)
	for i := 0; i < 3; i++ {
		h.place(object.EggNormal, float64(20+20*i), 40, 0.5)
	}
	survivor := h.place(object.EggNormal, 100, 60, 0.5)
	late := h.place(object.EggNormal, 100, 30, 0.7)

	h.s.Tick(0.6)
	if h.s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", h.s.Phase())
	}
	if n := h.feedback.count(EventLifeLost); n != 3 {
		t.Fatalf("lifeLost events = %d, want 3", n)
	}
	if !survivor.IsLive() {
		t.Fatalf("egg hatched after game over")
	}

	frozen := h.s.GameTime()
	spawned := h.renderer.next
	for i := 0; i < 20; i++ {
		h.s.Tick(1)
	}
	if h.s.GameTime() != frozen {
		t.Fatalf("game time moved to %v, want %v", h.s.GameTime(), frozen)
	}
	if h.renderer.next != spawned {
		t.Fatalf("eggs spawned during game over")
	}
	if !survivor.IsLive() || !late.IsLive() {
		t.Fatalf("eggs hatched during game over")
	}
	if h.feedback.count(EventEggHatch) != 3 {
		t.Fatalf("hatch events = %d, want 3", h.feedback.count(EventEggHatch))
	}
}

func TestTapDuringGameOverRequestsRestart(t *testing.T) {
	h := newHarness(t, 1)
	h.s.lives = 1
	h.place(object.EggNormal, 60, 40, 0.1)
	egg := h.place(object.EggNormal, 30, 40, 10)
	h.s.Tick(0.2)

	out := h.s.Tap(egg.Pos)
	if out.Result != TapRestart {
		t.Fatalf("result = %v, want restart", out.Result)
	}
	if !egg.IsLive() || h.s.Score() != 0 {
		t.Fatalf("tap mutated state during game over")
	}
}

func TestRestart(t *testing.T) {
	h := newHarness(t, 1)
	h.store.high = 42
	h.s.lives = 1
	h.place(object.EggNormal, 30, 40, 10)
	h.place(object.EggNormal, 60, 40, 0.1)
	h.s.Tick(1)
	if h.s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", h.s.Phase())
	}

	h.s.Restart()
	if h.s.Phase() != PhasePlaying || h.s.Lives() != InitialLives || h.s.Score() != 0 {
		t.Fatalf("after restart: %+v", h.s.Snapshot())
	}
	if len(h.s.Eggs()) != 0 || len(h.renderer.live) != 0 {
		t.Fatalf("eggs or visuals left after restart")
	}
	if h.s.HighScore() != 42 {
		t.Fatalf("high score = %d, want 42", h.s.HighScore())
	}

	h.s.Tick(50)
	if h.s.GameTime() != 0 {
		t.Fatalf("first tick after restart advanced time to %v", h.s.GameTime())
	}
	h.s.Tick(0.1)
	if h.s.GameTime() != 0.1 {
		t.Fatalf("game time = %v, want 0.1", h.s.GameTime())
	}
}

func TestTierChangesArePushedOnce(t *testing.T) {
	h := newHarness(t, 1)
	egg := h.place(object.EggNormal, 60, 40, 10)
	handle := h.s.eggs[0].visual

	h.s.Tick(3) // progress 0.7
	h.s.Tick(2) // progress 0.5
	h.s.Tick(0.1)
	h.s.Tick(2.5) // progress 0.24

	got := h.renderer.tints[handle]
	want := []object.Tier{object.TierWarning, object.TierCritical}
	if len(got) != len(want) {
		t.Fatalf("tints = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tints = %v, want %v", got, want)
		}
	}
	if !egg.IsLive() {
		t.Fatalf("egg hatched early")
	}
}

func TestPersistenceFailureDoesNotStopPlay(t *testing.T) {
	h := newHarness(t, 1)
	h.store.fail = true
	h.s.lives = 1
	h.place(object.EggNormal, 60, 40, 0.1)

	h.s.Tick(1)
	if h.s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", h.s.Phase())
	}
	if h.s.NewHighScore() {
		t.Fatalf("new high score reported on failed write")
	}

	h.s.Restart()
	h.s.Tick(0)
	h.s.Tick(0.1)
	if h.s.Phase() != PhasePlaying {
		t.Fatalf("phase after restart = %v", h.s.Phase())
	}
}

func TestNilCollaboratorsAreSafe(t *testing.T) {
	s := NewSession(Options{Field: testField, Rand: rand.New(rand.NewSource(3))})
	s.Tick(0)
	for i := 0; i < 2000 && s.Phase() == PhasePlaying; i++ {
		s.Tick(0.1)
	}
	if s.Phase() != PhaseGameOver {
		t.Fatalf("untouched game never ended")
	}
	if s.Lives() != 0 {
		t.Fatalf("lives = %d, want 0", s.Lives())
	}
}

// TestRandomPlayKeepsInvariants drives a session with random ticks and taps
// and checks terminal flags, life bounds and visual bookkeeping throughout.
func TestRandomPlayKeepsInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		h := newHarness(t, seed)
		rng := rand.New(rand.NewSource(seed * 31))
		resolved := make(map[uint64]object.Egg)
		removed := make(map[uint64]*object.Egg)

		for step := 0; step < 3000 && h.s.Phase() == PhasePlaying; step++ {
			before := make(map[uint64]*object.Egg, len(h.s.eggs))
			for _, rec := range h.s.eggs {
				before[rec.egg.ID] = rec.egg
			}

			if rng.Intn(3) == 0 {
				var p object.Point
				if eggs := h.s.Eggs(); len(eggs) > 0 && rng.Intn(4) != 0 {
					p = eggs[rng.Intn(len(eggs))].Pos
				} else {
					p = object.Point{X: rng.Float64() * testField.Width, Y: rng.Float64() * testField.Height}
				}
				out := h.s.Tap(p)
				if out.Points > MaxComboMultiplier*object.EggGolden.PointMultiplier() {
					t.Fatalf("seed %d: tap worth %d points", seed, out.Points)
				}
			} else {
				h.s.Tick(rng.Float64() * 0.2)
			}

			if l := h.s.Lives(); l < 0 || l > MaxLives {
				t.Fatalf("seed %d: lives = %d", seed, l)
			}
			if h.s.Score() < 0 {
				t.Fatalf("seed %d: score = %d", seed, h.s.Score())
			}

			current := make(map[uint64]bool, len(h.s.eggs))
			for _, rec := range h.s.eggs {
				current[rec.egg.ID] = true
				if rec.egg.Tapped && rec.egg.Hatched {
					t.Fatalf("seed %d: egg %d both tapped and hatched", seed, rec.egg.ID)
				}
				if h.s.Phase() == PhasePlaying && !rec.egg.IsLive() {
					t.Fatalf("seed %d: resolved egg %d still active", seed, rec.egg.ID)
				}
				if _, ok := resolved[rec.egg.ID]; ok {
					t.Fatalf("seed %d: removed egg %d came back", seed, rec.egg.ID)
				}
			}
			for id, snap := range resolved {
				if *removed[id] != snap {
					t.Fatalf("seed %d: removed egg %d mutated", seed, id)
				}
			}
			for id, egg := range before {
				if !current[id] {
					resolved[id] = *egg
					removed[id] = egg
				}
			}
		}

		if h.renderer.badCalls != 0 {
			t.Fatalf("seed %d: %d renderer calls on dead visuals", seed, h.renderer.badCalls)
		}
		for handle, n := range h.renderer.removed {
			if n != 1 {
				t.Fatalf("seed %d: visual %d removed %d times", seed, handle, n)
			}
		}
	}
}
