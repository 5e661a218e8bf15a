package synth

import (
	"image"
	"math/rand/v2"
)

// PlacementRegion is the inclusive range of top-left positions where a
// sprite fits entirely inside a background: x in [0, MaxX], y in [0, MaxY].
type PlacementRegion struct {
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// NewPlacementRegion computes the region for a sprite of size obj on a
// background of size bg. The result is invalid when the sprite is larger
// than the background in either dimension.
func NewPlacementRegion(bg, obj image.Point) PlacementRegion {
	return PlacementRegion{MaxX: bg.X - obj.X, MaxY: bg.Y - obj.Y}
}

// Valid reports whether at least one position exists.
func (r PlacementRegion) Valid() bool {
	return r.MaxX >= 0 && r.MaxY >= 0
}

// Contains reports whether p is a valid top-left position.
func (r PlacementRegion) Contains(p image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= r.MaxX && p.Y <= r.MaxY
}

// Sample draws a position uniformly from the region. It returns false, and
// draws nothing, when the region is invalid.
func (r PlacementRegion) Sample(rng *rand.Rand) (image.Point, bool) {
	if !r.Valid() {
		return image.Point{}, false
	}
	x := rng.IntN(r.MaxX + 1)
	y := rng.IntN(r.MaxY + 1)
	return image.Pt(x, y), true
}
