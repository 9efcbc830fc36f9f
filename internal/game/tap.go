package game

import (
	"github.com/tomz197/eggs/internal/object"
	"go.uber.org/zap"
)

// TapResult classifies what a tap did.
type TapResult int

const (
	TapMiss    TapResult = iota // nothing under the point
	TapHit                      // an egg was resolved
	TapRestart                  // game is over; the host may restart
)

// TapOutcome describes a resolved tap.
type TapOutcome struct {
	Result     TapResult
	EggID      uint64
	Type       object.EggType
	Points     int
	Combo      int
	LifeGained bool
	LifeLost   bool
}

// Tap resolves a tap at p against the live eggs. At most one egg resolves:
// the most recently spawned egg whose hit radius covers p.
func (s *Session) Tap(p object.Point) TapOutcome {
	if s.phase == PhaseGameOver {
		return TapOutcome{Result: TapRestart}
	}

	i := s.hitTest(p)
	if i < 0 {
		return TapOutcome{Result: TapMiss}
	}
	rec := s.eggs[i]
	if !rec.egg.MarkTapped() {
		return TapOutcome{Result: TapMiss}
	}

	out := TapOutcome{Result: TapHit, EggID: rec.egg.ID, Type: rec.egg.Type}
	s.renderer.RemoveVisual(rec.visual)
	s.dispatch(rec, &out)
	s.removeAt(i)

	s.log.Debug("egg tapped",
		zap.Uint64("egg", out.EggID),
		zap.Stringer("type", out.Type),
		zap.Int("points", out.Points),
		zap.Int("combo", out.Combo),
	)
	return out
}

func (s *Session) dispatch(rec *liveEgg, out *TapOutcome) {
	egg := rec.egg
	switch egg.Type {
	case object.EggNormal, object.EggGolden, object.EggSpeed:
		out.Combo = s.combo.Hit(s.gameTime)
		out.Points = s.combo.Multiplier() * egg.Type.PointMultiplier()
		s.score += out.Points
		s.totalTapped++

		s.feedback.Notify(EventEggTap)
		if egg.Type == object.EggGolden {
			s.playEffect(EffectSparkle, egg.Pos)
		} else {
			s.playEffect(EffectTap, egg.Pos)
		}
		if out.Combo > 1 {
			s.feedback.Notify(EventCombo)
			s.playEffect(EffectCombo, egg.Pos)
		}
		if egg.Type.IsSpecial() {
			s.feedback.Notify(EventSpecialEgg)
		}
		if egg.Type == object.EggSpeed {
			s.slowDown()
		}

	case object.EggHeart:
		s.feedback.Notify(EventEggTap)
		s.playEffect(EffectHeart, egg.Pos)
		if s.lives < MaxLives {
			s.lives++
			out.LifeGained = true
			s.feedback.Notify(EventHeartGained)
		} else {
			s.score += HeartBonus
			out.Points = HeartBonus
			s.feedback.Notify(EventSpecialEgg)
		}

	case object.EggBomb:
		s.combo.Break()
		s.playEffect(EffectExplosion, egg.Pos)
		out.LifeLost = true
		s.loseLife()
	}
}

// slowDown gives every live egg extra time. The tapped egg is already
// resolved, so only the others are affected.
func (s *Session) slowDown() {
	for _, rec := range s.eggs {
		rec.egg.ExtendHatch(SpeedSlowdown)
	}
}

// hitTest returns the index of the newest live egg covering p, or -1.
func (s *Session) hitTest(p object.Point) int {
	if !s.gridOK {
		s.grid.Clear()
		for i, rec := range s.eggs {
			if rec.egg.IsLive() {
				s.grid.Insert(rec.egg.Pos.X, rec.egg.Pos.Y, i)
			}
		}
		s.gridOK = true
	}

	best := -1
	s.grid.QueryAround(p.X, p.Y, func(i int) bool {
		if i > best && s.eggs[i].egg.IsLive() && s.eggs[i].egg.Contains(p) {
			best = i
		}
		return false
	})
	return best
}
