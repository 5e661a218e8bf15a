package detection

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
)

// Bounds is a bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// Rect converts b to an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Centroid returns the integer center of the box.
func (b Bounds) Centroid() image.Point {
	return image.Pt((b.X1+b.X2)/2, (b.Y1+b.Y2)/2)
}

// Detection is one object reported by a detector.
type Detection struct {
	Bounds  Bounds `json:"bounds"`
	ClassID int    `json:"class_id"`
	Score   int    `json:"score"` // Confidence in percent, 0-100
}

// Validate checks box ordering and the score range.
func (d Detection) Validate() error {
	if d.Bounds.X2 < d.Bounds.X1 || d.Bounds.Y2 < d.Bounds.Y1 {
		return fmt.Errorf("invalid bounds (%d,%d)-(%d,%d)", d.Bounds.X1, d.Bounds.Y1, d.Bounds.X2, d.Bounds.Y2)
	}
	if d.Score < 0 || d.Score > 100 {
		return fmt.Errorf("score %d outside 0-100", d.Score)
	}
	return nil
}

// Detector finds objects in an image. Implementations wrap a trained model
// outside this module.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]Detection, error)
}

// DefaultLabels maps the class identifiers of the drone/bird detector.
var DefaultLabels = map[int]string{
	0: "drone",
	1: "bird",
}

// DecodeDetections reads a JSON array of detections and validates each one.
func DecodeDetections(r io.Reader) ([]Detection, error) {
	var dets []Detection
	if err := json.NewDecoder(r).Decode(&dets); err != nil {
		return nil, fmt.Errorf("failed to parse detections: %w", err)
	}
	for i, d := range dets {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("detection %d: %w", i, err)
		}
	}
	return dets, nil
}

// StaticDetector replays a fixed set of detections for every image. It
// stands in for a model whose results were computed elsewhere.
type StaticDetector struct {
	Detections []Detection
}

// LoadStaticDetector reads detections from a JSON file.
func LoadStaticDetector(path string) (*StaticDetector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open detections: %w", err)
	}
	defer f.Close()

	dets, err := DecodeDetections(f)
	if err != nil {
		return nil, err
	}
	return &StaticDetector{Detections: dets}, nil
}

// Detect returns a copy of the stored detections.
func (s *StaticDetector) Detect(ctx context.Context, _ image.Image) ([]Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Detection(nil), s.Detections...), nil
}
