package detection

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/synthgen/internal/imaging"
)

// Drawing sizes, in pixels.
const (
	BoxThickness   = 3
	CentroidRadius = 5
)

// Palette holds the colors used by Annotate.
type Palette struct {
	Box      color.RGBA
	Text     color.RGBA
	Centroid color.RGBA
}

// Default palette colors as hex strings.
const (
	DefaultBoxHex      = "#00FF00"
	DefaultTextHex     = "#FFFFFF"
	DefaultCentroidHex = "#FF00FF"
)

// DefaultPalette returns green boxes, white text and magenta centroids.
func DefaultPalette() Palette {
	p, _ := ParsePalette(DefaultBoxHex, DefaultTextHex, DefaultCentroidHex)
	return p
}

// ParsePalette builds a palette from "#RRGGBB" (or "#RGB") strings.
func ParsePalette(box, text, centroid string) (Palette, error) {
	var p Palette
	for _, f := range []struct {
		hex string
		dst *color.RGBA
	}{
		{box, &p.Box},
		{text, &p.Text},
		{centroid, &p.Centroid},
	} {
		c, err := parseHex(f.hex)
		if err != nil {
			return Palette{}, err
		}
		*f.dst = c
	}
	return p, nil
}

func parseHex(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Tag returns the text drawn above a detection, e.g. "drone-87".
func Tag(label string, score int) string {
	return fmt.Sprintf("%s-%d", label, score)
}

// Annotate draws dets over a copy of img and returns the copy.
//
// Detections whose class is missing from labels are not drawn. A nil labels
// map uses DefaultLabels. Shapes partly outside the image are clipped.
func Annotate(img image.Image, dets []Detection, labels map[int]string, palette Palette) *image.RGBA {
	if labels == nil {
		labels = DefaultLabels
	}
	out := imaging.OpaqueCopy(img)

	for _, d := range dets {
		label, ok := labels[d.ClassID]
		if !ok {
			continue
		}
		box := d.Bounds.Rect()
		drawCircle(out, d.Bounds.Centroid(), CentroidRadius, palette.Centroid)
		drawOutline(out, box, BoxThickness, palette.Box)
		drawTag(out, box.Min, Tag(label, d.Score), palette.Box, palette.Text)
	}
	return out
}

// fillRect fills r clipped to dst.
func fillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawOutline draws the border of r growing inward by thickness pixels.
func drawOutline(dst *image.RGBA, r image.Rectangle, thickness int, c color.RGBA) {
	t := min(thickness, r.Dx(), r.Dy())
	if t <= 0 {
		return
	}
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), c) // top
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), c) // bottom
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y), c) // left
	fillRect(dst, image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y), c) // right
}

// drawCircle fills a disc of the given radius around center.
func drawCircle(dst *image.RGBA, center image.Point, radius int, c color.RGBA) {
	b := dst.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			p := image.Pt(center.X+dx, center.Y+dy)
			if p.In(b) {
				dst.SetRGBA(p.X, p.Y, c)
			}
		}
	}
}

// drawTag draws text on a filled background whose bottom-left corner sits
// at the box's top-left corner.
func drawTag(dst *image.RGBA, anchor image.Point, text string, bg, fg color.RGBA) {
	face := basicfont.Face7x13
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	descent := m.Descent.Ceil()
	width := font.MeasureString(face, text).Ceil()

	top := anchor.Y - ascent
	fillRect(dst, image.Rect(anchor.X, top, anchor.X+width, anchor.Y+descent), bg)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(anchor.X, anchor.Y),
	}
	d.DrawString(text)
}
