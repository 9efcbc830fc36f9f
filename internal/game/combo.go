package game

// Combo tracks consecutive scoring taps that land within ComboWindow of
// each other.
type Combo struct {
	Count       int
	Max         int
	LastTapTime float64
}

// Hit records a scoring tap at game time now and returns the new count.
func (c *Combo) Hit(now float64) int {
	if now-c.LastTapTime <= ComboWindow {
		c.Count++
	} else {
		c.Count = 1
	}
	c.LastTapTime = now
	if c.Count > c.Max {
		c.Max = c.Count
	}
	return c.Count
}

// Multiplier returns the score multiplier for the current count.
func (c *Combo) Multiplier() int {
	return min(c.Count, MaxComboMultiplier)
}

// Expire drops the count once the window has passed without a tap.
// Max is left alone. Returns true if the combo was dropped.
func (c *Combo) Expire(now float64) bool {
	if c.Count > 0 && now-c.LastTapTime > ComboWindow {
		c.Count = 0
		return true
	}
	return false
}

// Break zeroes the count immediately, bypassing the window.
func (c *Combo) Break() {
	c.Count = 0
}

// Reset clears all combo state for a new game.
func (c *Combo) Reset() {
	*c = Combo{}
}
