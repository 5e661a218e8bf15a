package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// Overlay alpha-blends sprite onto dst with the sprite's top-left corner at pos.
//
// For every pixel in the sprite's footprint and every color channel:
//
//	out = α·sprite + (1-α)·background,  α = sprite.A / 255
//
// The blend is computed in float64 and rounded to the nearest 8-bit value, so
// α = 255 reproduces the sprite color exactly and α = 0 leaves the background
// unchanged. Destination pixels are written fully opaque.
//
// # Bounds
//
// If the footprint does not fit entirely inside dst (pos negative, or
// pos.X+width > dst width, or pos.Y+height > dst height) Overlay does nothing
// and returns false. It never clips. Pixels outside the footprint are never
// touched.
func Overlay(dst *image.RGBA, sprite *image.NRGBA, pos image.Point) bool {
	db := dst.Bounds()
	sb := sprite.Bounds()
	w, h := sb.Dx(), sb.Dy()

	if pos.X < 0 || pos.Y < 0 || pos.X+w > db.Dx() || pos.Y+h > db.Dy() {
		return false
	}

	for y := 0; y < h; y++ {
		si := sprite.PixOffset(sb.Min.X, sb.Min.Y+y)
		di := dst.PixOffset(db.Min.X+pos.X, db.Min.Y+pos.Y+y)
		for x := 0; x < w; x++ {
			s := sprite.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]

			alpha := float64(s[3]) / 255.0
			d[0] = blendChannel(s[0], d[0], alpha)
			d[1] = blendChannel(s[1], d[1], alpha)
			d[2] = blendChannel(s[2], d[2], alpha)
			d[3] = 0xff

			si += 4
			di += 4
		}
	}
	return true
}

// blendChannel mixes one 8-bit channel with weight alpha in [0,1].
func blendChannel(src, dst uint8, alpha float64) uint8 {
	v := alpha*float64(src) + (1-alpha)*float64(dst)
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// OpaqueCopy returns a private, fully opaque RGBA copy of bg with its origin
// moved to (0,0). Any transparency in bg is dropped and the straight color
// of each pixel is kept, matching a three-channel background.
func OpaqueCopy(bg image.Image) *image.RGBA {
	// Straight alpha first: forcing A=255 on premultiplied data would darken
	// every translucent pixel.
	flat := imaging.Clone(bg)
	for i := 3; i < len(flat.Pix); i += 4 {
		flat.Pix[i] = 0xff
	}
	return clone.AsRGBA(flat)
}

// OverlayCopy composites sprite onto a copy of bg and returns the copy.
//
// bg itself is never modified. The returned flag is Overlay's result: false
// means the sprite did not fit and the copy equals bg.
func OverlayCopy(bg image.Image, sprite *image.NRGBA, pos image.Point) (*image.RGBA, bool) {
	out := OpaqueCopy(bg)
	ok := Overlay(out, sprite, pos)
	return out, ok
}
