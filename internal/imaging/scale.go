package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ScaledSize returns the dimensions of a w×h image scaled by factor on both
// axes. Each dimension is rounded to the nearest pixel and is at least 1.
func ScaledSize(w, h int, factor float64) (int, int) {
	sw := int(math.Round(float64(w) * factor))
	sh := int(math.Round(float64(h) * factor))
	return max(sw, 1), max(sh, 1)
}

// ScaleSprite resizes sprite by factor using a Lanczos filter.
//
// Resampling weights color by alpha, so fully transparent pixels do not
// bleed their color into the visible edge. The alpha channel is resampled
// like any other channel and is kept in the result.
func ScaleSprite(sprite *image.NRGBA, factor float64) *image.NRGBA {
	b := sprite.Bounds()
	w, h := ScaledSize(b.Dx(), b.Dy(), factor)
	if w == b.Dx() && h == b.Dy() {
		return imaging.Clone(sprite)
	}
	return imaging.Resize(sprite, w, h, imaging.Lanczos)
}
