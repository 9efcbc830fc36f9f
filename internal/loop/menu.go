package loop

import (
	"go.uber.org/zap"
)

// Menu entries, in display order.
var menuItems = []string{"PLAY", "SETTINGS", "QUIT"}

const (
	menuPlay = iota
	menuSettings
	menuQuit
)

// Settings entries, in display order.
const (
	settingSound = iota
	settingHaptics
	settingResetHighScore
	settingResetStats
	settingBack
	settingCount
)

const noticeSeconds = 2.0

// itemRow is the 1-based canvas row of list entry i on the menu and
// settings pages.
func (c *Client) itemRow(i int) int {
	return c.canvas.TerminalHeight()/2 + 1 + i*2
}

// clickedItem returns the entry under a click this frame, or -1.
func (c *Client) clickedItem(n int) int {
	for _, click := range c.state.Input.Clicks {
		row := click.Row - c.canvas.OffsetRow()
		for i := 0; i < n; i++ {
			if row == c.itemRow(i) {
				return i
			}
		}
	}
	return -1
}

// selection moves idx with the arrow keys and returns the entry chosen
// this frame by Enter, Space, a digit or a click, or -1.
func (c *Client) selection(idx *int, n int) int {
	in := c.state.Input
	if in.Up {
		*idx = (*idx + n - 1) % n
	}
	if in.Down {
		*idx = (*idx + 1) % n
	}
	if i := c.clickedItem(n); i >= 0 {
		*idx = i
		return i
	}
	if in.Number >= 1 && in.Number <= n {
		*idx = in.Number - 1
		return *idx
	}
	if in.Enter || in.Space {
		return *idx
	}
	return -1
}

// updateMenu handles the title screen.
func (c *Client) updateMenu() {
	switch c.selection(&c.state.menuIndex, len(menuItems)) {
	case menuPlay:
		c.startGame()
	case menuSettings:
		c.state.Screen = ScreenSettings
		c.state.settingsIndex = 0
	case menuQuit:
		c.state.Running = false
	}
}

// updateSettings handles the settings page. Toggles are saved at once.
func (c *Client) updateSettings() {
	if c.state.Input.Escape {
		c.backToMenu()
		return
	}

	switch c.selection(&c.state.settingsIndex, settingCount) {
	case settingSound:
		c.state.Settings.SoundEnabled = !c.state.Settings.SoundEnabled
		c.saveSettings()
	case settingHaptics:
		c.state.Settings.HapticsEnabled = !c.state.Settings.HapticsEnabled
		c.saveSettings()
	case settingResetHighScore:
		if err := c.store.ResetHighScore(); err != nil {
			c.log.Warn("reset high score", zap.Error(err))
			c.notify("Could not reset high score")
			return
		}
		c.refreshStats()
		c.notify("High score reset")
	case settingResetStats:
		if err := c.store.ResetAllStats(); err != nil {
			c.log.Warn("reset stats", zap.Error(err))
			c.notify("Could not reset statistics")
			return
		}
		c.refreshStats()
		c.notify("All statistics reset")
	case settingBack:
		c.backToMenu()
	}
}

func (c *Client) backToMenu() {
	c.state.Screen = ScreenMenu
	c.state.notice = ""
	c.refreshStats()
}

func (c *Client) notify(msg string) {
	c.state.notice = msg
	c.state.noticeTimer = noticeSeconds
}
