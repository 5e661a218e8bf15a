package synth

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/synthgen/internal/corpus"
	"github.com/ironsheep/synthgen/internal/imaging"
)

// OutputName returns the file name of the i-th scene (1-based).
func OutputName(i int) string {
	return fmt.Sprintf("synthetic_%d.jpg", i)
}

// Failure describes one skipped scene.
type Failure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Summary reports the outcome of a batch run.
type Summary struct {
	RunID     string    `json:"run_id"`
	Seed      uint64    `json:"seed"`
	Requested int       `json:"requested"`
	Written   int       `json:"written"`
	Skipped   int       `json:"skipped"`
	Outputs   []string  `json:"outputs"`
	Failures  []Failure `json:"failures,omitempty"`
	Elapsed   string    `json:"elapsed"`
}

// String renders the one-line end-of-run report.
func (s *Summary) String() string {
	return fmt.Sprintf("Synthetic data generated: %d/%d written, %d skipped (run %s, seed %d, %s)",
		s.Written, s.Requested, s.Skipped, s.RunID, s.Seed, s.Elapsed)
}

// Generator runs batches of scene generation.
type Generator struct {
	cfg      Config
	registry corpus.Registry
	sampler  *Sampler
}

// NewGenerator validates cfg and returns a generator reading assets from
// registry. A nil registry scans cfg.BackgroundDir and cfg.ObjectDir.
func NewGenerator(cfg Config, registry corpus.Registry) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if registry == nil {
		if cfg.BackgroundDir == "" || cfg.ObjectDir == "" {
			return nil, errors.New("invalid config: background and object directories are required")
		}
		registry = corpus.NewDirRegistry(cfg.BackgroundDir, cfg.ObjectDir)
	}
	return &Generator{
		cfg:      cfg,
		registry: registry,
		sampler:  NewSampler(cfg),
	}, nil
}

type outcomeKind int

const (
	outcomePending outcomeKind = iota
	outcomeWritten
	outcomeSkipped
	outcomeFatal
)

type outcome struct {
	kind outcomeKind
	path string
	err  error
}

// Run generates cfg.Count scenes into cfg.OutputDir.
//
// The corpus is listed once up front; an empty corpus returns
// *corpus.EmptyCorpusError before anything is written. Scenes that fail on
// bad data are skipped and counted. The first *WriteError stops the run and
// is returned together with the summary so far. Cancelling ctx stops
// scheduling new scenes and returns ctx.Err() with the partial summary.
func (g *Generator) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	log := Logger()

	listing, err := corpus.Snapshot(g.registry)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return nil, &WriteError{Path: g.cfg.OutputDir, Err: err}
	}

	seed := g.cfg.Seed
	if seed == 0 {
		seed = uint64(start.UnixNano())
	}

	summary := &Summary{
		RunID:     newRunID(),
		Seed:      seed,
		Requested: g.cfg.Count,
	}
	log.Info("starting synthetic run",
		"run", summary.RunID, "count", g.cfg.Count, "backgrounds", len(listing.Backgrounds),
		"objects", len(listing.Objects), "workers", g.cfg.Workers, "seed", seed)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]outcome, g.cfg.Count)
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < g.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				o := g.generate(i, seed, listing)
				outcomes[i-1] = o
				if o.kind == outcomeFatal {
					cancel()
				}
			}
		}()
	}

dispatch:
	for i := 1; i <= g.cfg.Count; i++ {
		select {
		case <-runCtx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	var fatal error
	for i, o := range outcomes {
		switch o.kind {
		case outcomeWritten:
			summary.Written++
			summary.Outputs = append(summary.Outputs, o.path)
		case outcomeSkipped:
			summary.Skipped++
			summary.Failures = append(summary.Failures, Failure{Index: i + 1, Reason: o.err.Error()})
		case outcomeFatal:
			if fatal == nil {
				fatal = o.err
			}
		}
	}
	summary.Elapsed = time.Since(start).Round(time.Millisecond).String()

	if fatal != nil {
		log.Error("synthetic run aborted", "run", summary.RunID, "error", fatal)
		return summary, fatal
	}
	if err := ctx.Err(); err != nil {
		log.Warn("synthetic run cancelled", "run", summary.RunID, "written", summary.Written)
		return summary, err
	}

	log.Info("synthetic run finished",
		"run", summary.RunID, "written", summary.Written, "skipped", summary.Skipped, "elapsed", summary.Elapsed)
	return summary, nil
}

// generate produces scene i with its own random stream.
func (g *Generator) generate(i int, seed uint64, listing *corpus.Listing) outcome {
	rng := rand.New(rand.NewPCG(seed, uint64(i)))
	log := Logger()

	scene, err := g.sampler.Sample(rng, listing)
	if err != nil {
		log.Warn("skipping scene", "index", i, "error", err)
		return outcome{kind: outcomeSkipped, err: err}
	}

	img, err := scene.Render()
	if err != nil {
		log.Warn("skipping scene", "index", i, "error", err)
		return outcome{kind: outcomeSkipped, err: err}
	}

	path := filepath.Join(g.cfg.OutputDir, OutputName(i))
	if err := imaging.WriteJPEG(path, img, g.cfg.JPEGQuality); err != nil {
		return outcome{kind: outcomeFatal, err: &WriteError{Path: path, Err: err}}
	}

	log.Debug("wrote scene",
		"index", i, "background", scene.BackgroundPath, "object", scene.ObjectPath,
		"scale", scene.Scale, "x", scene.Position.X, "y", scene.Position.Y)
	return outcome{kind: outcomeWritten, path: path}
}

// newRunID returns a time-ordered run identifier.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return id.String()
}
