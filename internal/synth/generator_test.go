package synth

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/ironsheep/synthgen/internal/corpus"
	"github.com/ironsheep/synthgen/internal/imaging"
)

// listOutputs returns the names of the files in dir, sorted.
func listOutputs(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestOutputName(t *testing.T) {
	if got := OutputName(1); got != "synthetic_1.jpg" {
		t.Errorf("OutputName(1): got %s, want synthetic_1.jpg", got)
	}
	if got := OutputName(100); got != "synthetic_100.jpg" {
		t.Errorf("OutputName(100): got %s, want synthetic_100.jpg", got)
	}
}

func TestGenerator_Run(t *testing.T) {
	bgDir, objDir := testCorpus(t)
	cfg := testConfig(t, bgDir, objDir)

	gen, err := NewGenerator(cfg, nil)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	summary, err := gen.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Requested != 6 || summary.Written != 6 || summary.Skipped != 0 {
		t.Errorf("summary: got %d/%d written, %d skipped", summary.Written, summary.Requested, summary.Skipped)
	}
	if summary.RunID == "" {
		t.Error("RunID is empty")
	}
	if summary.Seed != 42 {
		t.Errorf("Seed: got %d, want 42", summary.Seed)
	}

	want := []string{
		"synthetic_1.jpg", "synthetic_2.jpg", "synthetic_3.jpg",
		"synthetic_4.jpg", "synthetic_5.jpg", "synthetic_6.jpg",
	}
	got := listOutputs(t, cfg.OutputDir)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("outputs: got %v, want %v", got, want)
	}
	if len(summary.Outputs) != 6 || summary.Outputs[0] != filepath.Join(cfg.OutputDir, "synthetic_1.jpg") {
		t.Errorf("summary outputs: got %v", summary.Outputs)
	}

	// Every output has the size of one of the backgrounds.
	for _, p := range summary.Outputs {
		img, err := imaging.Load(p)
		if err != nil {
			t.Fatalf("output %s does not decode: %v", p, err)
		}
		size := img.Bounds().Size()
		if !(size.X == 160 && size.Y == 120) && !(size.X == 120 && size.Y == 100) {
			t.Errorf("output %s has unexpected size %v", p, size)
		}
	}
}

func TestGenerator_DeterministicAcrossWorkers(t *testing.T) {
	bgDir, objDir := testCorpus(t)

	run := func(workers int) string {
		cfg := testConfig(t, bgDir, objDir)
		cfg.Workers = workers
		gen, err := NewGenerator(cfg, nil)
		if err != nil {
			t.Fatalf("NewGenerator failed: %v", err)
		}
		if _, err := gen.Run(context.Background()); err != nil {
			t.Fatalf("Run with %d workers failed: %v", workers, err)
		}
		return cfg.OutputDir
	}

	seq := run(1)
	par := run(4)
	for i := 1; i <= 6; i++ {
		a, err := os.ReadFile(filepath.Join(seq, OutputName(i)))
		if err != nil {
			t.Fatalf("read sequential output: %v", err)
		}
		b, err := os.ReadFile(filepath.Join(par, OutputName(i)))
		if err != nil {
			t.Fatalf("read parallel output: %v", err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between 1 and 4 workers", OutputName(i))
		}
	}
}

func TestGenerator_SkipAndContinue(t *testing.T) {
	dir := t.TempDir()
	registry := &corpus.StaticRegistry{
		BackgroundPaths: []string{writeJPEG(t, dir, "bg.jpg", 80, 80)},
		ObjectPaths: []string{
			writePNG(t, dir, "ok.png", 40, 40, color.NRGBA{255, 0, 0, 255}),
			writeCorrupt(t, dir, "broken.png"),
		},
	}
	cfg := testConfig(t, "", "")
	cfg.Count = 20

	gen, err := NewGenerator(cfg, registry)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	summary, err := gen.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Written+summary.Skipped != 20 {
		t.Errorf("written %d + skipped %d != 20", summary.Written, summary.Skipped)
	}
	if summary.Skipped == 0 || summary.Written == 0 {
		t.Fatalf("expected a mix of outcomes, got %d written, %d skipped", summary.Written, summary.Skipped)
	}
	if len(summary.Failures) != summary.Skipped {
		t.Errorf("Failures: got %d, want %d", len(summary.Failures), summary.Skipped)
	}
	if n := len(listOutputs(t, cfg.OutputDir)); n != summary.Written {
		t.Errorf("files on disk: got %d, want %d", n, summary.Written)
	}
	for _, f := range summary.Failures {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, OutputName(f.Index))); !os.IsNotExist(err) {
			t.Errorf("skipped scene %d left a file", f.Index)
		}
	}
}

func TestGenerator_AllSkipped(t *testing.T) {
	dir := t.TempDir()
	registry := &corpus.StaticRegistry{
		BackgroundPaths: []string{writeJPEG(t, dir, "tiny.jpg", 8, 8)},
		ObjectPaths:     []string{writePNG(t, dir, "huge.png", 400, 400, color.NRGBA{A: 255})},
	}
	cfg := testConfig(t, "", "")
	cfg.Count = 3
	cfg.PlacementAttempts = 2

	gen, err := NewGenerator(cfg, registry)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	summary, err := gen.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Written != 0 || summary.Skipped != 3 {
		t.Errorf("summary: got %d written, %d skipped, want 0/3", summary.Written, summary.Skipped)
	}
	if !strings.Contains(summary.Failures[0].Reason, "does not fit") {
		t.Errorf("Reason: got %q", summary.Failures[0].Reason)
	}
}

func TestGenerator_EmptyCorpus(t *testing.T) {
	bgDir := t.TempDir()
	objDir := t.TempDir()
	writeJPEG(t, bgDir, "bg.jpg", 20, 20)
	cfg := testConfig(t, bgDir, objDir)

	gen, err := NewGenerator(cfg, nil)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	summary, err := gen.Run(context.Background())

	var empty *corpus.EmptyCorpusError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyCorpusError, got %v", err)
	}
	if summary != nil {
		t.Error("EmptyCorpusError should abort before a summary exists")
	}
	if _, err := os.Stat(cfg.OutputDir); !os.IsNotExist(err) {
		t.Error("output directory was created for an empty corpus")
	}
}

func TestGenerator_WriteError(t *testing.T) {
	bgDir, objDir := testCorpus(t)
	cfg := testConfig(t, bgDir, objDir)

	// A regular file where the output directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create blocker: %v", err)
	}
	cfg.OutputDir = blocker

	gen, err := NewGenerator(cfg, nil)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	_, err = gen.Run(context.Background())

	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected WriteError, got %v", err)
	}
}

func TestGenerator_Cancelled(t *testing.T) {
	bgDir, objDir := testCorpus(t)
	cfg := testConfig(t, bgDir, objDir)

	gen, err := NewGenerator(cfg, nil)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := gen.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary == nil || summary.Written+summary.Skipped > cfg.Count {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestNewGenerator_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 0
	if _, err := NewGenerator(cfg, nil); err == nil {
		t.Error("NewGenerator should reject an invalid config")
	}

	cfg = DefaultConfig()
	cfg.BackgroundDir = ""
	if _, err := NewGenerator(cfg, nil); err == nil {
		t.Error("NewGenerator should require directories without a registry")
	}
}

func TestSummary_String(t *testing.T) {
	s := &Summary{RunID: "r1", Seed: 7, Requested: 10, Written: 8, Skipped: 2, Elapsed: "1s"}
	got := s.String()
	for _, want := range []string{"8/10 written", "2 skipped", "run r1", "seed 7"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}
