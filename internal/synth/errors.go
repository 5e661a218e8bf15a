package synth

import (
	"fmt"
	"image"
)

// PlacementError reports that a scaled sprite never fit its background.
type PlacementError struct {
	Background     string
	Object         string
	Scale          float64     // Last scale factor tried
	SpriteSize     image.Point // Scaled sprite size for the last attempt
	BackgroundSize image.Point
	Attempts       int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("sprite %s (%dx%d at scale %.3f) does not fit background %s (%dx%d) after %d attempts",
		e.Object, e.SpriteSize.X, e.SpriteSize.Y, e.Scale,
		e.Background, e.BackgroundSize.X, e.BackgroundSize.Y, e.Attempts)
}

// WriteError reports an output that could not be created or written.
// It is fatal for a run.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
