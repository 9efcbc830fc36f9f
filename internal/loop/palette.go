package loop

import (
	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/eggs/internal/draw"
	"github.com/tomz197/eggs/internal/game"
	"github.com/tomz197/eggs/internal/object"
)

var (
	colorShell    = tcell.NewHexColor(0xF5EBD7)
	colorWarning  = tcell.NewHexColor(0xF2C94C)
	colorCritical = tcell.NewHexColor(0xEB5757)
	colorGolden   = tcell.NewHexColor(0xFFD700)
	colorSpeed    = tcell.NewHexColor(0x56CCF2)
	colorHeart    = tcell.NewHexColor(0xFF6B9D)
	colorBomb     = tcell.NewHexColor(0x4F4F4F)
	colorFuse     = tcell.NewHexColor(0x8B5A2B)
	colorSpark    = tcell.NewHexColor(0xFF9F1C)
	colorHen      = tcell.NewHexColor(0xCC9966)
	colorComb     = tcell.NewHexColor(0xD62828)
	colorChick    = tcell.NewHexColor(0xFFE066)
	colorWhite    = tcell.NewHexColor(0xFFFFFF)
	colorDim      = tcell.NewHexColor(0x888888)
	colorTitle    = tcell.NewHexColor(0xFFB703)
)

// eggColor is the fill of an egg. Normal eggs go shell, yellow, red as
// they run out of time; special eggs keep their colour and only redden
// when critical.
func eggColor(t object.EggType, tier object.Tier) tcell.Color {
	if t == object.EggNormal {
		switch tier {
		case object.TierWarning:
			return colorWarning
		case object.TierCritical:
			return colorCritical
		default:
			return colorShell
		}
	}

	var base tcell.Color
	switch t {
	case object.EggGolden:
		base = colorGolden
	case object.EggSpeed:
		base = colorSpeed
	case object.EggHeart:
		base = colorHeart
	default:
		base = colorBomb
	}
	if tier == object.TierCritical {
		return draw.Blend(base, colorCritical, 0.5)
	}
	return base
}

// bursts maps each effect to its particle spray.
var bursts = map[game.Effect]object.Burst{
	game.EffectTap: {
		Count: 8, Speed: 40, Lifetime: 0.4,
		Symbols: []rune{'·', '*', '\''},
		Colors:  []tcell.Color{colorShell, colorWhite},
	},
	game.EffectHatch: {
		Count: 12, Speed: 30, Lifetime: 0.7, Gravity: 60,
		Symbols: []rune{'v', '^', '\''},
		Colors:  []tcell.Color{colorShell, colorChick},
	},
	game.EffectSparkle: {
		Count: 16, Speed: 45, Lifetime: 0.6,
		Symbols: []rune{'✦', '*', '+'},
		Colors:  []tcell.Color{colorGolden, colorWhite},
	},
	game.EffectHeart: {
		Count: 10, Speed: 25, Lifetime: 0.8, Gravity: -20,
		Symbols: []rune{'♥'},
		Colors:  []tcell.Color{colorHeart, colorCritical},
	},
	game.EffectExplosion: {
		Count: 24, Speed: 60, Lifetime: 0.7, Gravity: 30,
		Symbols: []rune{'#', '*', '.', '%'},
		Colors:  []tcell.Color{colorSpark, colorCritical, colorBomb},
	},
	game.EffectCombo: {
		Count: 6, Speed: 50, Lifetime: 0.5,
		Symbols: []rune{'*', '+'},
		Colors:  []tcell.Color{colorTitle, colorWarning},
	},
}
