// Package game implements the egg simulation: spawning, hatch countdowns,
// tap resolution, combos and the Playing/GameOver state machine.
//
// A Session is driven by exactly two entry points, Tick and Tap, and is not
// safe for concurrent use. All timers are logical: eggs store their spawn
// and hatch times and are re-evaluated on every tick.
package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/eggs/internal/object"
	"github.com/tomz197/eggs/internal/physics"
	"go.uber.org/zap"
)

// Phase is the session state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Options configures a Session. Nil collaborators are replaced by no-ops.
type Options struct {
	Field       object.Field
	Rand        *rand.Rand
	Renderer    Renderer
	Feedback    Feedback
	Persistence Persistence
	Log         *zap.Logger
}

// liveEgg pairs an egg with the presentation state the session tracks for it.
type liveEgg struct {
	egg    *object.Egg
	visual VisualHandle
	tier   object.Tier
}

// Session owns every piece of mutable game state.
type Session struct {
	field    object.Field
	rng      *rand.Rand
	spawner  *object.EggSpawner
	eggs     []*liveEgg // creation order, oldest first
	grid     *physics.SpatialGrid
	gridOK   bool
	renderer Renderer
	effects  EffectRenderer
	feedback Feedback
	store    Persistence
	log      *zap.Logger

	phase        Phase
	synced       bool
	gameTime     float64
	score        int
	lives        int
	totalTapped  int
	combo        Combo
	highScore    int
	newHighScore bool
}

// NewSession creates a session in the Playing phase. The first Tick only
// syncs the clock.
func NewSession(opts Options) *Session {
	s := &Session{
		field:    opts.Field,
		rng:      opts.Rand,
		renderer: opts.Renderer,
		feedback: opts.Feedback,
		store:    opts.Persistence,
		log:      opts.Log,
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.renderer == nil {
		s.renderer = nopRenderer{}
	}
	if er, ok := s.renderer.(EffectRenderer); ok {
		s.effects = er
	}
	if s.feedback == nil {
		s.feedback = nopFeedback{}
	}
	if s.store == nil {
		s.store = nopPersistence{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	s.spawner = object.NewEggSpawner(s.field, s.rng)
	s.grid = physics.NewSpatialGrid(s.field.Width, s.field.Height, 2*object.EggHitRadius)
	s.reset()
	return s
}

// Restart clears the field and starts a fresh game.
func (s *Session) Restart() {
	for _, rec := range s.eggs {
		s.renderer.RemoveVisual(rec.visual)
	}
	s.reset()
	s.log.Debug("session restarted")
}

func (s *Session) reset() {
	clear(s.eggs)
	s.eggs = s.eggs[:0]
	s.gridOK = false
	s.spawner.Reset()
	s.combo.Reset()

	s.phase = PhasePlaying
	s.synced = false
	s.gameTime = 0
	s.score = 0
	s.lives = InitialLives
	s.totalTapped = 0
	s.newHighScore = false

	hs, err := s.store.LoadHighScore()
	if err != nil {
		s.log.Warn("load high score", zap.Error(err))
		return
	}
	s.highScore = hs
}

// Tick advances the simulation by elapsed seconds. The first tick after
// NewSession or Restart records the starting point and does not advance
// game time. Ticks in GameOver are no-ops.
func (s *Session) Tick(elapsed float64) {
	if s.phase == PhaseGameOver {
		return
	}
	if !s.synced {
		s.synced = true
		return
	}
	if !(elapsed > 0) { // negative and NaN deltas count as zero
		elapsed = 0
	}

	s.gameTime += elapsed

	s.updateHatches()
	if s.phase == PhaseGameOver {
		return
	}
	s.updateSpawner()
	s.combo.Expire(s.gameTime)
}

func (s *Session) updateSpawner() {
	egg := s.spawner.Update(s.gameTime)
	if egg == nil {
		return
	}
	rec := &liveEgg{
		egg:    egg,
		visual: s.renderer.SpawnEggVisual(egg.Type, egg.Pos),
		tier:   object.TierFresh,
	}
	s.eggs = append(s.eggs, rec)
	s.gridOK = false
}

// removeAt drops the egg at index i from the active set, keeping
// creation order.
func (s *Session) removeAt(i int) {
	copy(s.eggs[i:], s.eggs[i+1:])
	s.eggs[len(s.eggs)-1] = nil
	s.eggs = s.eggs[:len(s.eggs)-1]
	s.gridOK = false
}

// loseLife is the single life-loss path shared by hatches and bombs.
func (s *Session) loseLife() {
	if s.phase == PhaseGameOver {
		return
	}
	if s.lives > 0 {
		s.lives--
	}
	s.feedback.Notify(EventLifeLost)
	if s.lives == 0 {
		s.enterGameOver()
	}
}

func (s *Session) enterGameOver() {
	if s.phase == PhaseGameOver {
		return
	}
	s.phase = PhaseGameOver
	s.feedback.Notify(EventGameOver)

	isNew, err := s.store.UpdateHighScore(s.score)
	if err != nil {
		s.log.Warn("update high score", zap.Int("score", s.score), zap.Error(err))
	}
	s.newHighScore = isNew
	if s.score > s.highScore {
		s.highScore = s.score
	}

	if err := s.store.RecordGameEnd(s.score, s.totalTapped, s.combo.Max); err != nil {
		s.log.Warn("record game end", zap.Error(err))
	}

	s.log.Info("game over",
		zap.Int("score", s.score),
		zap.Int("eggs_tapped", s.totalTapped),
		zap.Int("max_combo", s.combo.Max),
		zap.Float64("game_time", s.gameTime),
		zap.Bool("new_high_score", isNew),
	)
}

func (s *Session) playEffect(kind Effect, pos object.Point) {
	if s.effects != nil {
		s.effects.PlayEffect(kind, pos, s.combo.Count)
	}
}

// Phase returns the current state.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// GameTime returns the seconds of play since the clock synced.
func (s *Session) GameTime() float64 { return s.gameTime }

// Combo returns the current combo count.
func (s *Session) Combo() int { return s.combo.Count }

// MaxCombo returns the best combo of this game.
func (s *Session) MaxCombo() int { return s.combo.Max }

// TotalTapped returns how many scoring eggs were tapped this game.
func (s *Session) TotalTapped() int { return s.totalTapped }

// LastSpawnTime returns the game time of the latest spawn.
func (s *Session) LastSpawnTime() float64 { return s.spawner.LastSpawnTime() }

// HighScore returns the best score known to the session.
func (s *Session) HighScore() int { return s.highScore }

// NewHighScore reports whether the finished game set a new high score.
func (s *Session) NewHighScore() bool { return s.newHighScore }

// Eggs returns copies of the eggs in the active set, oldest first.
func (s *Session) Eggs() []object.Egg {
	out := make([]object.Egg, len(s.eggs))
	for i, rec := range s.eggs {
		out[i] = *rec.egg
	}
	return out
}

// Snapshot is a read-only view of the HUD-relevant state.
type Snapshot struct {
	Phase        Phase
	Score        int
	Lives        int
	GameTime     float64
	Combo        int
	MaxCombo     int
	Multiplier   int
	TotalTapped  int
	HighScore    int
	NewHighScore bool
	LiveEggs     int
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Phase:        s.phase,
		Score:        s.score,
		Lives:        s.lives,
		GameTime:     s.gameTime,
		Combo:        s.combo.Count,
		MaxCombo:     s.combo.Max,
		Multiplier:   s.combo.Multiplier(),
		TotalTapped:  s.totalTapped,
		HighScore:    s.highScore,
		NewHighScore: s.newHighScore,
		LiveEggs:     len(s.eggs),
	}
}
