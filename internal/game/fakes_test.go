package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/tomz197/eggs/internal/object"
)

var testField = object.Field{Width: 120, Height: 80, EdgePadding: 2, TopBand: 10}

type fakeRenderer struct {
	next    VisualHandle
	live    map[VisualHandle]object.EggType
	removed map[VisualHandle]int
	tints   map[VisualHandle][]object.Tier
	effects []Effect

	// badCalls counts calls that touched a handle that was not live.
	badCalls int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		live:    make(map[VisualHandle]object.EggType),
		removed: make(map[VisualHandle]int),
		tints:   make(map[VisualHandle][]object.Tier),
	}
}

func (r *fakeRenderer) SpawnEggVisual(t object.EggType, _ object.Point) VisualHandle {
	r.next++
	r.live[r.next] = t
	return r.next
}

func (r *fakeRenderer) RemoveVisual(h VisualHandle) {
	if _, ok := r.live[h]; !ok {
		r.badCalls++
	}
	delete(r.live, h)
	r.removed[h]++
}

func (r *fakeRenderer) SetVisualTint(h VisualHandle, tier object.Tier) {
	if _, ok := r.live[h]; !ok {
		r.badCalls++
	}
	r.tints[h] = append(r.tints[h], tier)
}

func (r *fakeRenderer) PlayEffect(kind Effect, _ object.Point, _ int) {
	r.effects = append(r.effects, kind)
}

type fakeFeedback struct {
	events []Event
}

func (f *fakeFeedback) Notify(e Event) {
	f.events = append(f.events, e)
}

func (f *fakeFeedback) count(e Event) int {
	n := 0
	for _, got := range f.events {
		if got == e {
			n++
		}
	}
	return n
}

type fakeStore struct {
	high        int
	updateCalls []int
	recordCalls int
	lastRecord  [3]int
	fail        bool
}

var errStore = errors.New("store unavailable")

func (s *fakeStore) LoadHighScore() (int, error) {
	if s.fail {
		return 0, errStore
	}
	return s.high, nil
}

func (s *fakeStore) UpdateHighScore(score int) (bool, error) {
	s.updateCalls = append(s.updateCalls, score)
	if s.fail {
		return false, errStore
	}
	if score > s.high {
		s.high = score
		return true, nil
	}
	return false, nil
}

func (s *fakeStore) RecordGameEnd(score, eggsTapped, maxCombo int) error {
	s.recordCalls++
	s.lastRecord = [3]int{score, eggsTapped, maxCombo}
	if s.fail {
		return errStore
	}
	return nil
}

type harness struct {
	s        *Session
	renderer *fakeRenderer
	feedback *fakeFeedback
	store    *fakeStore
	nextID   uint64
}

// newHarness returns a session whose clock is already synced.
func newHarness(t *testing.T, seed int64) *harness {
	t.Helper()
	h := &harness{
		renderer: newFakeRenderer(),
		feedback: &fakeFeedback{},
		store:    &fakeStore{},
		nextID:   1 << 32,
	}
	h.s = NewSession(Options{
		Field:       testField,
		Rand:        rand.New(rand.NewSource(seed)),
		Renderer:    h.renderer,
		Feedback:    h.feedback,
		Persistence: h.store,
	})
	h.s.Tick(0)
	return h
}

// place puts an egg on the field at the current game time, bypassing the
// spawner.
func (h *harness) place(typ object.EggType, x, y, hatch float64) *object.Egg {
	egg := &object.Egg{
		ID:        h.nextID,
		Type:      typ,
		Pos:       object.Point{X: x, Y: y},
		SpawnTime: h.s.gameTime,
		HatchTime: hatch,
	}
	h.nextID++
	h.s.eggs = append(h.s.eggs, &liveEgg{
		egg:    egg,
		visual: h.renderer.SpawnEggVisual(typ, egg.Pos),
		tier:   object.TierFresh,
	})
	h.s.gridOK = false
	return egg
}

// tapAt taps the egg's position at the given game time without ticking.
func (h *harness) tapAt(gameTime float64, egg *object.Egg) TapOutcome {
	h.s.gameTime = gameTime
	return h.s.Tap(egg.Pos)
}
