package draw

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// cell is what one terminal cell showed after the last Render.
type cell struct {
	top, bottom tcell.Color
	valid       bool
}

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters. It scales from logical coordinates to terminal
// pixels and only re-emits cells that changed since the previous Render.
type Canvas struct {
	termWidth      int           // Actual terminal columns
	termHeight     int           // Actual terminal rows
	subPixelHeight int           // termHeight * 2
	pixels         []tcell.Color // [y * termWidth + x]; ColorDefault is empty
	prev           []cell        // [row * termWidth + col]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64 // in sub-pixels
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets used to centre the canvas when the terminal
	// is larger than the maximum render size.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
}

// NewCanvas creates a canvas for the given terminal dimensions with a
// 1:1 mapping.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping
// logical size. The next Render repaints every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]tcell.Color, subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
	c.ForceRedraw()
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas. What is on screen stays until
// the next Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// screen was cleared behind the canvas's back.
func (c *Canvas) ForceRedraw() {
	clear(c.prev)
}

// MarkTextDirty invalidates n cells starting at the 1-based canvas
// position (col, row). Call it for text written over the canvas so the
// next Render paints over the text once it is gone.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < col-1+n && x < c.termWidth; x++ {
		c.prev[r*c.termWidth+x].valid = false
	}
}

func (c *Canvas) setPixel(x, y int, color tcell.Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// Pixel returns the colour of the sub-pixel at terminal pixel (x, y), or
// tcell.ColorDefault when it is empty or out of range.
func (c *Canvas) Pixel(x, y int) tcell.Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return tcell.ColorDefault
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, color tcell.Color) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	c.setPixel(px, py, color)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, color tcell.Color) {
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, color)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillEllipse fills the ellipse centred on center with logical radii rx
// and ry. A pixel is inside when its centre is.
func (c *Canvas) FillEllipse(center Point, rx, ry float64, color tcell.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	cx, cy := center.X*c.scaleX, center.Y*c.scaleY
	prx, pry := rx*c.scaleX, ry*c.scaleY

	yStart := int(math.Floor(cy - pry))
	yEnd := int(math.Ceil(cy + pry))
	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) + 0.5 - cy) / pry
		if dy*dy > 1 {
			continue
		}
		half := prx * math.Sqrt(1-dy*dy)
		xStart := int(math.Ceil(cx - half - 0.5))
		xEnd := int(math.Floor(cx + half - 0.5))
		for x := xStart; x <= xEnd; x++ {
			c.setPixel(x, y, color)
		}
	}
}

// FillRect fills the logical rectangle with top-left corner p.
func (c *Canvas) FillRect(p Point, w, h float64, color tcell.Color) {
	x0 := int(math.Floor(p.X * c.scaleX))
	y0 := int(math.Floor(p.Y * c.scaleY))
	x1 := int(math.Ceil((p.X + w) * c.scaleX))
	y1 := int(math.Ceil((p.Y + h) * c.scaleY))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.setPixel(x, y, color)
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the cells that changed since the last Render using
// half-block characters and truecolor escapes.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	curFg, curBg := "", ""
	setColors := func(fg, bg tcell.Color) {
		if s := FgSeq(fg); s != curFg {
			c.renderBuf.WriteString(s)
			curFg = s
		}
		if s := BgSeq(bg); s != curBg {
			c.renderBuf.WriteString(s)
			curBg = s
		}
	}

	lastRow, lastCol := -1, -1
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cur := cell{
				top:    c.pixels[topOffset+col],
				bottom: c.pixels[bottomOffset+col],
				valid:  true,
			}
			idx := row*c.termWidth + col
			if c.prev[idx] == cur {
				continue
			}
			c.prev[idx] = cur

			var ch rune
			top, bottom := cur.top != tcell.ColorDefault, cur.bottom != tcell.ColorDefault
			switch {
			case top && bottom && cur.top == cur.bottom:
				ch = BlockFull
				setColors(cur.top, tcell.ColorDefault)
			case top && bottom:
				ch = BlockUpperHalf
				setColors(cur.top, cur.bottom)
			case top:
				ch = BlockUpperHalf
				setColors(cur.top, tcell.ColorDefault)
			case bottom:
				ch = BlockLowerHalf
				setColors(cur.bottom, tcell.ColorDefault)
			default:
				ch = BlockEmpty
				setColors(tcell.ColorDefault, tcell.ColorDefault)
			}

			// Adjacent cells on a row share one cursor move.
			if row != lastRow || col != lastCol+1 {
				fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			}
			c.renderBuf.WriteRune(ch)
			lastRow, lastCol = row, col
		}
	}
	if c.renderBuf.Len() == 0 {
		return
	}
	c.renderBuf.WriteString(ColorReset)

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.Grow((c.termWidth+2)*2 + c.termHeight*2*12)

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution, in sub-pixels).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based screen position (as reported by a
// mouse click, offsets included) to the logical point at the centre of
// that cell. ok is false when the position lies outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	c0 := col - 1 - c.offsetCol
	r0 := row - 1 - c.offsetRow
	if c0 < 0 || c0 >= c.termWidth || r0 < 0 || r0 >= c.termHeight {
		return 0, 0, false
	}
	x = (float64(c0) + 0.5) / c.scaleX
	y = (float64(r0)*2 + 1) / c.scaleY
	return x, y, true
}
