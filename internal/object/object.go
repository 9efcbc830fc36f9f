// Package object holds the game entities: the egg type catalog, eggs,
// the egg spawner and the particles used for tap and hatch effects.
package object

import "math/rand"

// Point is a position in logical play-field units.
type Point struct {
	X, Y float64
}

// Field describes the play field in logical units.
// Eggs never spawn inside EdgePadding of any edge or inside the TopBand,
// which is reserved for the spawner avatar and the HUD.
type Field struct {
	Width       float64
	Height      float64
	EdgePadding float64
	TopBand     float64
}

// SpawnBounds returns the rectangle egg centers are drawn from for eggs
// of the given radius. A field too small to fit an egg collapses the range
// to its midpoint instead of inverting it.
func (f Field) SpawnBounds(radius float64) (minX, maxX, minY, maxY float64) {
	minX = f.EdgePadding + radius
	maxX = f.Width - f.EdgePadding - radius
	minY = f.TopBand + f.EdgePadding + radius
	maxY = f.Height - f.EdgePadding - radius

	if maxX < minX {
		mid := (minX + maxX) / 2
		minX, maxX = mid, mid
	}
	if maxY < minY {
		mid := (minY + maxY) / 2
		minY, maxY = mid, mid
	}
	return minX, maxX, minY, maxY
}

// RandomPosition draws a uniform position inside the spawn bounds.
func (f Field) RandomPosition(rng *rand.Rand, radius float64) Point {
	minX, maxX, minY, maxY := f.SpawnBounds(radius)
	return Point{
		X: uniform(rng, minX, maxX),
		Y: uniform(rng, minY, maxY),
	}
}

// uniform returns a value in [lo, hi]. Callers guarantee lo <= hi.
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
