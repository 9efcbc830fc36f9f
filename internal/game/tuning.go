package game

// Session tuning. Times are in seconds of game time.
const (
	InitialLives       = 3
	MaxLives           = 3
	ComboWindow        = 1.5
	MaxComboMultiplier = 5
	SpeedSlowdown      = 2.0 // added to every other live egg's hatch time
	HeartBonus         = 10  // awarded instead of a life when lives are full
)
