// Package config centralizes the play-field geometry and client timing.
// Session rules (lives, combo, spawn curves) live in the game and object
// packages next to the code that enforces them.
package config

import "time"

// View resolution - the play field in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical field width
	ViewHeight = 80  // Logical field height (in sub-pixels, so 40 terminal rows)
)

// Play-field layout, in logical units.
const (
	TopBand     = 12 // Reserved for the HUD and the hen
	EdgePadding = 3  // Eggs keep this far from every edge
)

// Max render resolution in terminal cells. Larger terminals get a
// centred, bordered play field.
const (
	MaxTermWidth  = 180
	MaxTermHeight = 60
)

// Feedback and effects
const (
	ShakeSeconds    = 0.3 // Screen shake after losing a life
	ShakeFrequency  = 30.0
	PopupSeconds    = 0.8 // Floating score/combo text
	RestartGuard    = 0.6 // Taps ignored this long after game over
	TutorialSeconds = 6.0
)

// Hen avatar glides towards the newest egg at this speed (logical units/s).
const HenSpeed = 90.0

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
