package draw

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

var red = tcell.NewRGBColor(255, 0, 0)

func TestRenderOnlyRepaintsChanges(t *testing.T) {
	c := NewCanvas(10, 5)
	c.setPixel(2, 0, red)

	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.ContainsRune(buf.String(), BlockUpperHalf) {
		t.Fatalf("first render missing upper half block: %q", buf.String())
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged canvas rendered %q", buf.String())
	}

	c.MarkTextDirty(1, 1, 3)
	c.Render(&buf)
	if got := strings.Count(buf.String(), string(BlockUpperHalf)); got != 1 {
		t.Fatalf("dirty render repainted %d blocks, want 1: %q", got, buf.String())
	}

	buf.Reset()
	c.Clear()
	c.Render(&buf)
	if strings.ContainsRune(buf.String(), BlockUpperHalf) || !strings.Contains(buf.String(), " ") {
		t.Fatalf("cleared pixel not erased: %q", buf.String())
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	blue := tcell.NewRGBColor(0, 0, 255)
	tests := []struct {
		name        string
		top, bottom tcell.Color
		want        rune
		wantSeq     string
	}{
		{"top", red, tcell.ColorDefault, BlockUpperHalf, FgSeq(red)},
		{"bottom", tcell.ColorDefault, red, BlockLowerHalf, FgSeq(red)},
		{"same", red, red, BlockFull, FgSeq(red)},
		{"split", red, blue, BlockUpperHalf, BgSeq(blue)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(1, 1)
			c.setPixel(0, 0, tt.top)
			c.setPixel(0, 1, tt.bottom)
			var buf bytes.Buffer
			c.Render(&buf)
			out := buf.String()
			if !strings.ContainsRune(out, tt.want) {
				t.Fatalf("render = %q, want %q", out, tt.want)
			}
			if !strings.Contains(out, tt.wantSeq) {
				t.Fatalf("render = %q, missing %q", out, tt.wantSeq)
			}
		})
	}
}

func TestFillEllipse(t *testing.T) {
	c := NewCanvas(40, 20) // 40x40 pixels
	c.FillEllipse(Point{X: 20, Y: 20}, 10, 10, red)

	n := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if c.Pixel(x, y) == red {
				n++
				dx, dy := float64(x)+0.5-20, float64(y)+0.5-20
				if dx*dx+dy*dy > 100 {
					t.Fatalf("pixel (%d,%d) outside the circle", x, y)
				}
			}
		}
	}
	if area := math.Pi * 100; math.Abs(float64(n)-area) > area*0.1 {
		t.Fatalf("filled %d pixels, want about %.0f", n, area)
	}

	c.Clear()
	c.FillEllipse(Point{X: 20, Y: 20}, 0, 10, red)
	if c.Pixel(20, 20) != tcell.ColorDefault {
		t.Fatalf("degenerate ellipse drew pixels")
	}
}

func TestTerminalToLogical(t *testing.T) {
	c := NewScaledCanvas(60, 20, 120, 80) // 2 logical units per column and row-half
	c.SetOffset(5, 3)

	x, y, ok := c.TerminalToLogical(6, 4)
	if !ok || x != 1 || y != 2 {
		t.Fatalf("TerminalToLogical(6,4) = %v,%v,%v; want 1,2,true", x, y, ok)
	}

	for _, p := range [][2]int{{5, 4}, {6, 3}, {66, 4}, {6, 24}} {
		if _, _, ok := c.TerminalToLogical(p[0], p[1]); ok {
			t.Fatalf("TerminalToLogical(%d,%d) is inside the canvas", p[0], p[1])
		}
	}

	// A logical point maps back to the cell it came from.
	col, row := c.LogicalToTerminal(51, 30)
	x, y, _ = c.TerminalToLogical(col+5, row+3)
	if gotCol, gotRow := c.LogicalToTerminal(x, y); gotCol != col || gotRow != row {
		t.Fatalf("round trip moved (%d,%d) to (%d,%d)", col, row, gotCol, gotRow)
	}
}

func TestOffsetChangeForcesRedraw(t *testing.T) {
	c := NewCanvas(4, 2)
	c.setPixel(0, 0, red)
	var buf bytes.Buffer
	c.Render(&buf)

	buf.Reset()
	c.SetOffset(1, 0)
	c.Render(&buf)
	if !strings.Contains(buf.String(), "\033[1;2H") {
		t.Fatalf("render after offset change = %q", buf.String())
	}
}

func TestColorHelpers(t *testing.T) {
	if got := FgSeq(tcell.NewRGBColor(1, 2, 3)); got != "\033[38;2;1;2;3m" {
		t.Fatalf("FgSeq = %q", got)
	}
	if got := BgSeq(tcell.ColorDefault); got != "\033[49m" {
		t.Fatalf("BgSeq(default) = %q", got)
	}
	black, white := tcell.NewRGBColor(0, 0, 0), tcell.NewRGBColor(200, 100, 50)
	if got := Blend(black, white, 0.5); got != tcell.NewRGBColor(100, 50, 25) {
		r, g, b := got.RGB()
		t.Fatalf("Blend = %d,%d,%d", r, g, b)
	}
	if Blend(black, white, -1) != black || Blend(black, white, 2) != white {
		t.Fatalf("Blend does not clamp t")
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(3, 4, "hi")
	cw.WriteColorAt(1, 1, "x", red)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "\033[5;5Hhi\033[2;3H" + FgSeq(red) + "x" + ColorReset
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
	if cw.Len() != 0 {
		t.Fatalf("buffer not reset after flush")
	}
}
