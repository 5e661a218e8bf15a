package synth

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writePNG writes a solid-color NRGBA PNG and returns its path.
func writePNG(t *testing.T, dir, name string, w, h int, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

// writeJPEG writes a JPEG with a horizontal gradient and returns its path.
func writeJPEG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 200, 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

// writeCorrupt writes a file that is not an image.
func writeCorrupt(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// testCorpus creates backgrounds/ and objects/ under a temp dir with a
// couple of valid assets each and returns the two directories.
func testCorpus(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	bgDir := filepath.Join(root, "backgrounds")
	objDir := filepath.Join(root, "objects")
	for _, d := range []string{bgDir, objDir} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", d, err)
		}
	}

	writeJPEG(t, bgDir, "field.jpg", 160, 120)
	writePNG(t, bgDir, "sky.png", 120, 100, color.NRGBA{0, 0, 255, 255})
	writePNG(t, objDir, "drone.png", 60, 40, color.NRGBA{255, 0, 0, 255})
	writePNG(t, objDir, "bird.png", 50, 50, color.NRGBA{20, 20, 20, 180})
	return bgDir, objDir
}

// testConfig returns a small, seeded config writing into a fresh directory.
func testConfig(t *testing.T, bgDir, objDir string) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.BackgroundDir = bgDir
	cfg.ObjectDir = objDir
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.Count = 6
	cfg.Seed = 42
	return cfg
}
