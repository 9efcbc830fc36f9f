package game

// Event names a feedback notification. The values double as the keys
// presentation layers map sounds and haptics to.
type Event string

const (
	EventEggTap      Event = "eggTap"
	EventEggHatch    Event = "eggHatch"
	EventLifeLost    Event = "lifeLost"
	EventGameOver    Event = "gameOver"
	EventCombo       Event = "combo"
	EventSpecialEgg  Event = "specialEgg"
	EventHeartGained Event = "heartGained"
)

// Effect names a one-shot visual effect at a position.
type Effect int

const (
	EffectTap Effect = iota
	EffectHatch
	EffectSparkle
	EffectHeart
	EffectExplosion
	EffectCombo
)
