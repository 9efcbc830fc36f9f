package loop

import (
	"math"
	"math/rand"
	"sort"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/eggs/internal/draw"
	"github.com/tomz197/eggs/internal/game"
	"github.com/tomz197/eggs/internal/loop/config"
	"github.com/tomz197/eggs/internal/object"
)

// eggVisual is what the scene draws for one live egg.
type eggVisual struct {
	typ  object.EggType
	pos  object.Point
	tier object.Tier
}

// popup is floating text such as "+5" or "x3 COMBO".
type popup struct {
	text  string
	pos   object.Point
	ttl   float64
	color tcell.Color
}

// Scene owns everything drawn on the play field. It is the session's
// Renderer and EffectRenderer, and a Feedback sink that turns heavy
// haptic events into a bell and a screen shake.
type Scene struct {
	rng       *rand.Rand
	eggs      map[game.VisualHandle]*eggVisual
	next      game.VisualHandle
	particles []*object.Particle
	popups    []popup
	henX      float64
	henTarget float64
	clock     float64
	haptics   bool
	bell      bool
	shake     float64
}

var (
	_ game.Renderer       = (*Scene)(nil)
	_ game.EffectRenderer = (*Scene)(nil)
	_ game.Feedback       = (*Scene)(nil)
)

func NewScene(rng *rand.Rand) *Scene {
	return &Scene{
		rng:       rng,
		eggs:      make(map[game.VisualHandle]*eggVisual),
		henX:      config.ViewWidth / 2,
		henTarget: config.ViewWidth / 2,
		haptics:   true,
	}
}

// SpawnEggVisual implements game.Renderer. Handles start at 1.
func (s *Scene) SpawnEggVisual(t object.EggType, pos object.Point) game.VisualHandle {
	s.next++
	s.eggs[s.next] = &eggVisual{typ: t, pos: pos}
	s.henTarget = pos.X
	return s.next
}

// RemoveVisual implements game.Renderer.
func (s *Scene) RemoveVisual(h game.VisualHandle) {
	delete(s.eggs, h)
}

// SetVisualTint implements game.Renderer.
func (s *Scene) SetVisualTint(h game.VisualHandle, tier object.Tier) {
	if v, ok := s.eggs[h]; ok {
		v.tier = tier
	}
}

// PlayEffect implements game.EffectRenderer.
func (s *Scene) PlayEffect(kind game.Effect, pos object.Point, combo int) {
	if b, ok := bursts[kind]; ok {
		if kind == game.EffectCombo {
			b.Count *= min(combo, game.MaxComboMultiplier)
		}
		s.particles = object.SpawnBurst(s.particles, s.rng, pos.X, pos.Y, b)
	}
	switch kind {
	case game.EffectCombo:
		s.Popup(comboText(combo), object.Point{X: pos.X, Y: pos.Y - object.EggHeight}, colorTitle)
	case game.EffectHeart:
		s.Popup("♥", pos, colorHeart)
	}
}

func comboText(combo int) string {
	return "x" + strconv.Itoa(min(combo, game.MaxComboMultiplier)) + " COMBO"
}

// Popup shows text floating up from pos for a moment.
func (s *Scene) Popup(text string, pos object.Point, color tcell.Color) {
	s.popups = append(s.popups, popup{text: text, pos: pos, ttl: config.PopupSeconds, color: color})
}

// Notify implements game.Feedback. Only life loss and game over reach
// the player, as a bell and a short shake.
func (s *Scene) Notify(e game.Event) {
	if !s.haptics {
		return
	}
	switch e {
	case game.EventLifeLost, game.EventGameOver:
		s.bell = true
		s.shake = config.ShakeSeconds
	}
}

// SetHaptics turns bell and shake on or off.
func (s *Scene) SetHaptics(on bool) {
	s.haptics = on
	if !on {
		s.bell = false
		s.shake = 0
	}
}

// TakeBell reports whether a bell is due and clears it.
func (s *Scene) TakeBell() bool {
	b := s.bell
	s.bell = false
	return b
}

// ShakeOffset is the horizontal cell offset to draw the field at.
func (s *Scene) ShakeOffset() int {
	if s.shake <= 0 {
		return 0
	}
	if math.Sin(s.clock*config.ShakeFrequency*2*math.Pi) >= 0 {
		return 1
	}
	return -1
}

// shakeShift converts ShakeOffset to logical units: one terminal column.
func (s *Scene) shakeShift(c *draw.Canvas) float64 {
	off := s.ShakeOffset()
	if off == 0 || c.TerminalWidth() <= 0 {
		return 0
	}
	return float64(off) * c.LogicalWidth() / float64(c.TerminalWidth())
}

// ClearEffects drops particles, popups and a pending shake.
func (s *Scene) ClearEffects() {
	for _, p := range s.particles {
		p.Release()
	}
	s.particles = s.particles[:0]
	s.popups = s.popups[:0]
	s.shake = 0
	s.bell = false
}

// Len returns the number of egg visuals alive.
func (s *Scene) Len() int {
	return len(s.eggs)
}

// Update advances effects and the hen by dt seconds.
func (s *Scene) Update(dt float64) {
	s.clock += dt
	if s.shake > 0 {
		s.shake = math.Max(0, s.shake-dt)
	}

	kept := s.particles[:0]
	for _, p := range s.particles {
		if p.Update(dt) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(s.particles[len(kept):])
	s.particles = kept

	popups := s.popups[:0]
	for _, p := range s.popups {
		p.ttl -= dt
		p.pos.Y -= 10 * dt
		if p.ttl > 0 {
			popups = append(popups, p)
		}
	}
	s.popups = popups

	step := config.HenSpeed * dt
	switch d := s.henTarget - s.henX; {
	case math.Abs(d) <= step:
		s.henX = s.henTarget
	case d > 0:
		s.henX += step
	default:
		s.henX -= step
	}
}

// Draw paints the hen and the eggs onto the canvas. Later eggs are
// drawn on top, matching tap resolution.
func (s *Scene) Draw(c *draw.Canvas) {
	dx := s.shakeShift(c)
	s.drawHen(c, dx)

	handles := make([]game.VisualHandle, 0, len(s.eggs))
	for h := range s.eggs {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	for _, h := range handles {
		v := s.eggs[h]
		pos := v.pos
		pos.X += dx
		if v.tier == object.TierCritical {
			pos.X += 0.8 * math.Sin(s.clock*25)
		}
		color := eggColor(v.typ, v.tier)
		center := draw.Point{X: pos.X, Y: pos.Y}
		c.FillEllipse(center, object.EggWidth/2, object.EggHeight/2, color)
		c.FillEllipse(draw.Point{X: pos.X - 1.5, Y: pos.Y - 2}, 1, 1.5, draw.Blend(color, colorWhite, 0.5))

		if v.typ == object.EggBomb {
			top := draw.Point{X: pos.X, Y: pos.Y - object.EggHeight/2}
			c.DrawLine(top, draw.Point{X: pos.X + 1, Y: top.Y - 3}, colorFuse)
			if int(s.clock*8)%2 == 0 {
				c.SetFloat(pos.X+1, top.Y-3.5, colorSpark)
			}
		}
	}
}

func (s *Scene) drawHen(c *draw.Canvas, dx float64) {
	x, y := s.henX+dx, float64(config.TopBand)/2
	c.FillEllipse(draw.Point{X: x, Y: y + 1}, 5, 3.5, colorHen)
	c.FillEllipse(draw.Point{X: x + 4, Y: y - 2}, 2, 2, colorHen)
	c.FillRect(draw.Point{X: x + 3, Y: y - 5}, 2, 1.5, colorComb)
	c.SetFloat(x+6.5, y-2, colorSpark)
}

// DrawOverlay writes particles and popups as coloured glyphs over the
// rendered canvas and marks their cells dirty.
func (s *Scene) DrawOverlay(cw *draw.ChunkWriter, c *draw.Canvas) {
	w, h := c.TerminalWidth(), c.TerminalHeight()
	for _, p := range s.particles {
		if !p.Visible() {
			continue
		}
		col, row := c.LogicalToTerminal(p.X, p.Y)
		if col < 1 || col > w || row < 1 || row > h {
			continue
		}
		cw.WriteColorAt(col, row, string(p.Symbol), p.Color)
		c.MarkTextDirty(col, row, 1)
	}
	for _, p := range s.popups {
		col, row := c.LogicalToTerminal(p.pos.X, p.pos.Y)
		col -= len([]rune(p.text)) / 2
		n := len([]rune(p.text))
		if col < 1 || col+n-1 > w || row < 1 || row > h {
			continue
		}
		cw.WriteColorAt(col, row, p.text, p.color)
		c.MarkTextDirty(col, row, n)
	}
}
