package detection

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBounds_Centroid(t *testing.T) {
	tests := []struct {
		b    Bounds
		want image.Point
	}{
		{Bounds{0, 0, 10, 10}, image.Pt(5, 5)},
		{Bounds{10, 20, 31, 41}, image.Pt(20, 30)},
	}
	for _, tt := range tests {
		if got := tt.b.Centroid(); got != tt.want {
			t.Errorf("Centroid(%+v): got %v, want %v", tt.b, got, tt.want)
		}
	}
}

func TestDetection_Validate(t *testing.T) {
	tests := []struct {
		name    string
		d       Detection
		wantErr bool
	}{
		{"valid", Detection{Bounds: Bounds{1, 1, 5, 5}, Score: 87}, false},
		{"zero area", Detection{Bounds: Bounds{1, 1, 1, 1}, Score: 0}, false},
		{"inverted x", Detection{Bounds: Bounds{5, 1, 1, 5}, Score: 50}, true},
		{"score too high", Detection{Bounds: Bounds{1, 1, 5, 5}, Score: 101}, true},
		{"negative score", Detection{Bounds: Bounds{1, 1, 5, 5}, Score: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate: got %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeDetections(t *testing.T) {
	input := `[
		{"bounds": {"x1": 10, "y1": 20, "x2": 50, "y2": 60}, "class_id": 0, "score": 91},
		{"bounds": {"x1": 0, "y1": 0, "x2": 5, "y2": 5}, "class_id": 1, "score": 55}
	]`

	dets, err := DecodeDetections(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeDetections failed: %v", err)
	}
	if len(dets) != 2 {
		t.Fatalf("count: got %d, want 2", len(dets))
	}
	if dets[0].Bounds != (Bounds{10, 20, 50, 60}) || dets[0].Score != 91 {
		t.Errorf("first detection: got %+v", dets[0])
	}
	if dets[1].ClassID != 1 {
		t.Errorf("ClassID: got %d, want 1", dets[1].ClassID)
	}
}

func TestDecodeDetections_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `[{"bounds":`},
		{"bad score", `[{"bounds": {"x1": 0, "y1": 0, "x2": 5, "y2": 5}, "score": 150}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeDetections(strings.NewReader(tt.input)); err == nil {
				t.Error("DecodeDetections should fail")
			}
		})
	}
}

func TestStaticDetector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dets.json")
	data := `[{"bounds": {"x1": 1, "y1": 2, "x2": 3, "y2": 4}, "class_id": 0, "score": 70}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write detections: %v", err)
	}

	det, err := LoadStaticDetector(path)
	if err != nil {
		t.Fatalf("LoadStaticDetector failed: %v", err)
	}

	var _ Detector = det
	got, err := det.Detect(context.Background(), image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(got) != 1 || got[0].Score != 70 {
		t.Errorf("Detect: got %+v", got)
	}

	// Callers may modify the result without affecting the detector.
	got[0].Score = 1
	if det.Detections[0].Score != 70 {
		t.Error("Detect returned the detector's own slice")
	}
}

func TestStaticDetector_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (&StaticDetector{}).Detect(ctx, nil); err == nil {
		t.Error("Detect should fail on a cancelled context")
	}
}

func TestLoadStaticDetector_Missing(t *testing.T) {
	if _, err := LoadStaticDetector("/nonexistent/dets.json"); err == nil {
		t.Error("LoadStaticDetector should fail for a missing file")
	}
}
