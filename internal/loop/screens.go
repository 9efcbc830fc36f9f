package loop

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/eggs/internal/draw"
	"github.com/tomz197/eggs/internal/game"
	"github.com/tomz197/eggs/internal/loop/config"
	"github.com/tomz197/eggs/internal/object"
)

// ASCII art title (figlet "small" font)
var titleArt = []string{
	` ___  ___   ___  ___ `,
	`| __|/ __| / __|/ __|`,
	`| _|| (_ || (_ |\__ \`,
	`|___|\___| \___||___/`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen, phase or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	phase := c.session.Phase()
	stateChanged := c.state.Screen != c.state.prevScreen ||
		(c.state.Screen == ScreenPlaying && phase != c.state.prevPhase)
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevScreen = c.state.Screen
		c.state.prevPhase = phase
		c.state.wasInactive = c.state.isInactive
	}

	if c.scene.TakeBell() {
		c.chunkWriter.WriteString("\a")
	}

	c.canvas.Clear()
	switch c.state.Screen {
	case ScreenPlaying:
		c.scene.Draw(c.canvas)
	case ScreenMenu, ScreenSettings:
		c.drawDecorativeEggs()
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	if c.state.Screen == ScreenPlaying {
		c.scene.DrawOverlay(c.chunkWriter, c.canvas)
	}
	c.drawUI()

	return c.chunkWriter.Flush()
}

// text writes s at a canvas position and marks the cells dirty so the
// canvas repaints them once the text is gone.
func (c *Client) text(col, row int, s string, color tcell.Color) {
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	n := utf8.RuneCountInString(s)
	col = max(col, 1)
	if color == tcell.ColorDefault {
		c.chunkWriter.WriteAt(col, row, s)
	} else {
		c.chunkWriter.WriteColorAt(col, row, s, color)
	}
	c.canvas.MarkTextDirty(col, row, n)
}

// centered writes s centred on column centerX.
func (c *Client) centered(centerX, row int, s string, color tcell.Color) {
	c.text(centerX-utf8.RuneCountInString(s)/2, row, s, color)
}

// blinkOn toggles every 600ms for prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.Screen {
	case ScreenMenu:
		c.drawMenuScreen(centerX, centerY)
	case ScreenSettings:
		c.drawSettingsScreen(centerX, centerY)
	case ScreenPlaying:
		c.drawPlayingHUD(termWidth, termHeight)
		if c.session.Phase() == game.PhaseGameOver {
			c.drawGameOverScreen(centerX, centerY)
		} else if c.state.tutorialTimer > 0 {
			c.drawTutorial(centerX, termHeight)
		}
	}
}

func (c *Client) drawDecorativeEggs() {
	y := float64(config.ViewHeight) - 10
	for i, t := range object.AllEggTypes {
		x := float64(config.ViewWidth)/2 + float64(i-len(object.AllEggTypes)/2)*14
		color := eggColor(t, object.TierFresh)
		c.canvas.FillEllipse(draw.Point{X: x, Y: y}, object.EggWidth/2, object.EggHeight/2, color)
		c.canvas.FillEllipse(draw.Point{X: x - 1.5, Y: y - 2}, 1, 1.5, draw.Blend(color, colorWhite, 0.5))
	}
}

// drawList draws selectable entries on the rows returned by itemRow.
func (c *Client) drawList(centerX int, items []string, selected int) {
	width := 0
	for _, item := range items {
		width = max(width, utf8.RuneCountInString(item))
	}
	for i, item := range items {
		line := "  " + item + strings.Repeat(" ", width-utf8.RuneCountInString(item)) + "  "
		color := colorDim
		if i == selected {
			line = "> " + item + strings.Repeat(" ", width-utf8.RuneCountInString(item)) + " <"
			color = colorWhite
		}
		c.centered(centerX, c.itemRow(i), line, color)
	}
}

// drawMenuScreen draws the title screen.
func (c *Client) drawMenuScreen(centerX, centerY int) {
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}
	titleStartY := centerY - len(titleArt) - 5
	for i, line := range titleArt {
		c.text(centerX-titleWidth/2, titleStartY+i, line, colorTitle)
	}

	subtitle := "~ Clicky Chicky, Eggy Messy ~"
	c.centered(centerX, titleStartY+len(titleArt)+1, subtitle, tcell.ColorDefault)
	if c.player != "" {
		c.centered(centerX, titleStartY+len(titleArt)+2, "Playing as "+c.player, colorDim)
	}

	c.drawList(centerX, menuItems, c.state.menuIndex)

	st := c.state.Stats
	statsY := c.itemRow(len(menuItems)) + 1
	c.centered(centerX, statsY, fmt.Sprintf("High Score: %d", st.HighScore), colorWarning)
	c.centered(centerX, statsY+1, fmt.Sprintf("Games: %d | Eggs: %d", st.GamesPlayed, st.TotalEggsTapped), colorDim)

	hint := "Arrows + ENTER or click  .  Q quits"
	c.centered(centerX, c.canvas.TerminalHeight(), hint, colorDim)
}

// drawSettingsScreen draws the settings page.
func (c *Client) drawSettingsScreen(centerX, centerY int) {
	c.centered(centerX, centerY-4, "SETTINGS", colorTitle)

	onOff := func(on bool) string {
		if on {
			return "ON"
		}
		return "OFF"
	}
	items := []string{
		"Sound:   " + onOff(c.state.Settings.SoundEnabled),
		"Haptics: " + onOff(c.state.Settings.HapticsEnabled),
		"Reset High Score",
		"Reset All Stats",
		"Back",
	}
	c.drawList(centerX, items, c.state.settingsIndex)

	st := c.state.Stats
	infoY := c.itemRow(len(items)) + 1
	c.centered(centerX, infoY, fmt.Sprintf("High Score: %d | Best Combo: %dx", st.HighScore, st.BestCombo), colorDim)
	if c.state.notice != "" && c.state.noticeTimer > 0 {
		c.centered(centerX, infoY+2, c.state.notice, colorWarning)
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen (since we no longer clear every frame).
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	s := c.session
	c.text(2, 1, fmt.Sprintf("Score: %-7d", s.Score()), colorWhite)
	c.text(2, 2, fmt.Sprintf("Best:  %-7d", max(s.HighScore(), s.Score())), colorDim)

	var lives strings.Builder
	for i := 0; i < game.MaxLives; i++ {
		if i > 0 {
			lives.WriteByte(' ')
		}
		if i < s.Lives() {
			lives.WriteRune('♥')
		} else {
			lives.WriteRune('♡')
		}
	}
	c.text(termWidth-utf8.RuneCountInString(lives.String()), 1, lives.String(), colorHeart)

	timeText := fmt.Sprintf("%6.1fs", s.GameTime())
	c.text(termWidth-len(timeText), 2, timeText, colorDim)

	comboText := strings.Repeat(" ", 10)
	if s.Combo() > 1 {
		comboText = fmt.Sprintf("Combo x%-3d", min(s.Combo(), game.MaxComboMultiplier))
	}
	c.centered(termWidth/2, termHeight, comboText, colorTitle)

	if c.state.cursorVisible && s.Phase() == game.PhasePlaying {
		col, row := c.canvas.LogicalToTerminal(c.state.cursor.X, c.state.cursor.Y)
		c.text(col, row, "+", colorWhite)
	}
}

// drawTutorial draws the one-time controls hint.
func (c *Client) drawTutorial(centerX, termHeight int) {
	lines := []string{
		"Click the eggs before they hatch!",
		"Golden x5  .  Speed slows the rest  .  Heart +1 life  .  Avoid bombs",
		"No mouse? Arrows move the crosshair, SPACE taps. ESC for menu.",
	}
	for i, line := range lines {
		c.centered(centerX, termHeight-len(lines)-1+i, line, colorWarning)
	}
}

// drawGameOverScreen draws the game-over overlay.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	titleWidth := 0
	for _, line := range gameOverArt {
		titleWidth = max(titleWidth, len(line))
	}
	titleStartY := centerY - 6
	for i, line := range gameOverArt {
		c.text(centerX-titleWidth/2, titleStartY+i, line, colorCritical)
	}

	s := c.session
	y := titleStartY + len(gameOverArt) + 1
	c.centered(centerX, y, fmt.Sprintf("Score: %d", s.Score()), colorWhite)
	if s.NewHighScore() {
		c.centered(centerX, y+1, "NEW HIGH SCORE!", colorGolden)
	} else {
		c.centered(centerX, y+1, fmt.Sprintf("High Score: %d", s.HighScore()), colorDim)
	}
	c.centered(centerX, y+2, fmt.Sprintf("Eggs: %d | Best Combo: %dx", s.TotalTapped(), s.MaxCombo()), colorDim)

	if c.state.sinceGameOver >= config.RestartGuard && blinkOn() {
		c.centered(centerX, y+4, ">>  Click or press SPACE to restart  <<", colorWhite)
	}
	c.centered(centerX, y+5, "ESC for menu", colorDim)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.centered(centerX, centerY-2, "INACTIVITY WARNING", colorCritical)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.state.lastInput).Seconds()),
	)
	c.centered(centerX, centerY, msg, tcell.ColorDefault)
	c.centered(centerX, centerY+2, "Press any key to continue", colorDim)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.centered(centerX, centerY-3, "SERVER SHUTTING DOWN", colorCritical)
	c.centered(centerX, centerY-1, "The server is restarting for maintenance.", tcell.ColorDefault)
	c.centered(centerX, centerY, "Your stats are saved. Please reconnect in a moment.", tcell.ColorDefault)

	remaining := int(c.state.shutdownTimer) + 1
	c.centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining), colorDim)
	c.centered(centerX, centerY+4, "Press Q to disconnect now", colorDim)
}
