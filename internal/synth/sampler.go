package synth

import (
	"image"
	"math/rand/v2"

	"github.com/ironsheep/synthgen/internal/corpus"
	"github.com/ironsheep/synthgen/internal/imaging"
)

// Scene is one sampled composition, ready to render. It is created per
// output image and dropped once written.
type Scene struct {
	BackgroundPath string
	ObjectPath     string
	Background     image.Image
	Sprite         *image.NRGBA // Already scaled
	Scale          float64
	Position       image.Point
}

// Render composites the sprite onto a private copy of the background.
// The Scene's own buffers are left untouched.
func (s *Scene) Render() (*image.RGBA, error) {
	bgSize := s.Background.Bounds().Size()
	spriteSize := s.Sprite.Bounds().Size()
	if !NewPlacementRegion(bgSize, spriteSize).Contains(s.Position) {
		return nil, &PlacementError{
			Background:     s.BackgroundPath,
			Object:         s.ObjectPath,
			Scale:          s.Scale,
			SpriteSize:     spriteSize,
			BackgroundSize: bgSize,
			Attempts:       1,
		}
	}
	out, _ := imaging.OverlayCopy(s.Background, s.Sprite, s.Position)
	return out, nil
}

// Sampler draws random scenes from a corpus listing.
type Sampler struct {
	Scale    ScaleRange
	Attempts int // Scale draws per scene before giving up; at least 1
}

// NewSampler returns a sampler for cfg's scale range and attempt budget.
func NewSampler(cfg Config) *Sampler {
	return &Sampler{Scale: cfg.Scale, Attempts: cfg.PlacementAttempts}
}

// Sample picks a background, a sprite, a scale and a position.
//
// Returns *imaging.DecodeError when either asset cannot be decoded and
// *PlacementError when no drawn scale lets the sprite fit.
func (s *Sampler) Sample(rng *rand.Rand, listing *corpus.Listing) (*Scene, error) {
	bgPath := listing.Backgrounds[rng.IntN(len(listing.Backgrounds))]
	objPath := listing.Objects[rng.IntN(len(listing.Objects))]

	bg, err := imaging.Load(bgPath)
	if err != nil {
		return nil, err
	}
	sprite, err := imaging.LoadSprite(objPath)
	if err != nil {
		return nil, err
	}

	bgSize := bg.Bounds().Size()
	spriteSize := sprite.Bounds().Size()
	attempts := max(s.Attempts, 1)

	var (
		scale float64
		w, h  int
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		scale = s.Scale.Draw(rng)
		w, h = imaging.ScaledSize(spriteSize.X, spriteSize.Y, scale)

		region := NewPlacementRegion(bgSize, image.Pt(w, h))
		pos, ok := region.Sample(rng)
		if !ok {
			Logger().Debug("sprite does not fit, redrawing scale",
				"object", objPath, "background", bgPath, "scale", scale, "attempt", attempt)
			continue
		}

		return &Scene{
			BackgroundPath: bgPath,
			ObjectPath:     objPath,
			Background:     bg,
			Sprite:         imaging.ScaleSprite(sprite, scale),
			Scale:          scale,
			Position:       pos,
		}, nil
	}

	return nil, &PlacementError{
		Background:     bgPath,
		Object:         objPath,
		Scale:          scale,
		SpriteSize:     image.Pt(w, h),
		BackgroundSize: bgSize,
		Attempts:       attempts,
	}
}
