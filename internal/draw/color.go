package draw

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// ColorReset restores the terminal's default attributes.
const ColorReset = "\033[0m"

// FgSeq returns the truecolor escape selecting c as foreground.
// tcell.ColorDefault selects the terminal's own foreground.
func FgSeq(c tcell.Color) string {
	return colorSeq(c, "38", "39")
}

// BgSeq returns the truecolor escape selecting c as background.
func BgSeq(c tcell.Color) string {
	return colorSeq(c, "48", "49")
}

func colorSeq(c tcell.Color, set, unset string) string {
	if c == tcell.ColorDefault || !c.Valid() {
		return "\033[" + unset + "m"
	}
	r, g, b := c.RGB()
	buf := make([]byte, 0, 24)
	buf = append(buf, "\033["...)
	buf = append(buf, set...)
	buf = append(buf, ";2;"...)
	buf = strconv.AppendInt(buf, int64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(g), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(b), 10)
	buf = append(buf, 'm')
	return string(buf)
}

// Blend mixes a towards b by t in [0, 1].
func Blend(a, b tcell.Color, t float64) tcell.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	mix := func(x, y int32) int32 {
		return x + int32(float64(y-x)*t)
	}
	return tcell.NewRGBColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
