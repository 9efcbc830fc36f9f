package loop

import (
	"fmt"

	"github.com/tomz197/eggs/internal/game"
	"github.com/tomz197/eggs/internal/input"
	"github.com/tomz197/eggs/internal/loop/config"
	"github.com/tomz197/eggs/internal/object"
	"go.uber.org/zap"
)

// cursorStep is how far one arrow key press moves the crosshair.
const cursorStep = 3.0

// startGame starts a fresh session from the menu.
func (c *Client) startGame() {
	c.scene.ClearEffects()
	c.session.Restart()
	c.state.Screen = ScreenPlaying
	c.state.sinceGameOver = 0

	if !c.state.Settings.HasSeenTutorial {
		c.state.tutorialTimer = config.TutorialSeconds
		c.state.Settings.HasSeenTutorial = true
		c.saveSettings()
	}
	c.log.Debug("game started")
}

// leaveGame abandons the session and returns to the menu. An unfinished
// game is not recorded.
func (c *Client) leaveGame() {
	c.scene.ClearEffects()
	c.session.Restart()
	c.state.tutorialTimer = 0
	c.state.Screen = ScreenMenu
	c.refreshStats()
}

// updatePlaying handles the playing screen.
func (c *Client) updatePlaying(dt float64) {
	in := c.state.Input
	if in.Escape {
		c.leaveGame()
		return
	}

	wasOver := c.session.Phase() == game.PhaseGameOver
	if wasOver {
		c.state.sinceGameOver += dt
	}
	if c.state.tutorialTimer > 0 {
		c.state.tutorialTimer -= dt
	}

	c.moveCursor(in)

	for _, click := range in.Clicks {
		x, y, ok := c.canvas.TerminalToLogical(click.Col, click.Row)
		if !ok {
			continue
		}
		c.state.cursorVisible = false
		c.tap(object.Point{X: x, Y: y})
	}
	if in.Space || in.Enter {
		c.tap(c.state.cursor)
	}

	c.session.Tick(dt)

	if !wasOver && c.session.Phase() == game.PhaseGameOver {
		c.state.sinceGameOver = 0
		c.state.tutorialTimer = 0
		c.refreshStats()
	}
}

// moveCursor moves the keyboard crosshair and shows it.
func (c *Client) moveCursor(in input.Input) {
	dx, dy := 0.0, 0.0
	if in.Left {
		dx -= cursorStep
	}
	if in.Right {
		dx += cursorStep
	}
	if in.Up {
		dy -= cursorStep
	}
	if in.Down {
		dy += cursorStep
	}
	if dx == 0 && dy == 0 {
		return
	}
	c.state.cursorVisible = true
	c.state.cursor.X = clamp(c.state.cursor.X+dx, 0, config.ViewWidth-1)
	c.state.cursor.Y = clamp(c.state.cursor.Y+dy, config.TopBand, config.ViewHeight-1)
}

// tap forwards a tap to the session and handles the outcome.
func (c *Client) tap(p object.Point) {
	out := c.session.Tap(p)
	switch out.Result {
	case game.TapRestart:
		if c.state.sinceGameOver < config.RestartGuard {
			return
		}
		c.scene.ClearEffects()
		c.session.Restart()
		c.state.sinceGameOver = 0
		c.log.Debug("game restarted")
	case game.TapHit:
		if out.Points > 0 {
			c.scene.Popup(fmt.Sprintf("+%d", out.Points), object.Point{X: p.X, Y: p.Y - object.EggHeight/2}, colorWhite)
		}
		if out.LifeLost {
			c.log.Debug("bomb tapped", zap.Int("lives", c.session.Lives()))
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
