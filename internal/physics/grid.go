package physics

import "math"

// SpatialGrid is a uniform grid over a bounded (non-wrapping) field used as
// a broad phase for point queries. Items are inserted by position and
// index; QueryAround visits every item in the 3x3 cell neighborhood.
//
// Cell size must be >= the largest hit radius of the inserted items so that
// every item whose radius covers the query point is in the neighborhood.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64
	cols        int
	rows        int
	cells       [][]int
	count       int
}

// NewSpatialGrid creates a grid covering width x height with square cells.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

// Clear removes all items while keeping cell capacity for reuse.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.count = 0
}

// Len returns the number of inserted items.
func (g *SpatialGrid) Len() int {
	return g.count
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.cellOf(x, y)
	i := row*g.cols + col
	g.cells[i] = append(g.cells[i], index)
	g.count++
}

// QueryAround calls fn for each item index in the 3x3 neighborhood of the
// cell containing (x, y). Neighbors outside the field are skipped.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.cellOf(x, y)

	for r := row - 1; r <= row+1; r++ {
		if r < 0 || r >= g.rows {
			continue
		}
		for c := col - 1; c <= col+1; c++ {
			if c < 0 || c >= g.cols {
				continue
			}
			for _, index := range g.cells[r*g.cols+c] {
				if fn(index) {
					return
				}
			}
		}
	}
}

// cellOf converts a position to cell coordinates, clamped to the grid so
// points just outside the field still query the edge cells.
func (g *SpatialGrid) cellOf(x, y float64) (col, row int) {
	col = clampInt(int(math.Floor(x*g.invCellSize)), 0, g.cols-1)
	row = clampInt(int(math.Floor(y*g.invCellSize)), 0, g.rows-1)
	return col, row
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
