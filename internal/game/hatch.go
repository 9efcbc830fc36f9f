package game

import "github.com/tomz197/eggs/internal/object"

// updateHatches re-evaluates every live egg's countdown. Eggs whose time
// ran out hatch and cost a life. If that ends the game, the remaining eggs
// stay in the set untouched: GameOver makes them inert.
func (s *Session) updateHatches() {
	kept := s.eggs[:0]
	for i, rec := range s.eggs {
		if s.phase == PhaseGameOver {
			kept = append(kept, s.eggs[i:]...)
			break
		}
		if s.advanceEgg(rec) {
			s.gridOK = false
			continue
		}
		kept = append(kept, rec)
	}
	clear(s.eggs[len(kept):])
	s.eggs = kept
}

// advanceEgg updates one egg and reports whether it left the active set.
func (s *Session) advanceEgg(rec *liveEgg) bool {
	if !rec.egg.IsLive() {
		return true
	}
	if rec.egg.Remaining(s.gameTime) <= 0 {
		s.hatch(rec)
		return true
	}

	tier := object.TierFor(rec.egg.Progress(s.gameTime))
	if tier != rec.tier {
		rec.tier = tier
		s.renderer.SetVisualTint(rec.visual, tier)
	}
	return false
}

func (s *Session) hatch(rec *liveEgg) {
	if !rec.egg.MarkHatched() {
		return
	}
	s.renderer.RemoveVisual(rec.visual)
	s.playEffect(EffectHatch, rec.egg.Pos)
	s.feedback.Notify(EventEggHatch)
	s.loseLife()
}
