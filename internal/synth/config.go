package synth

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/ironsheep/synthgen/internal/imaging"
)

// Default configuration values.
const (
	DefaultBackgroundDir     = "backgrounds/"
	DefaultObjectDir         = "objects/"
	DefaultOutputDir         = "synthetic_data/"
	DefaultCount             = 100
	DefaultScaleMin          = 0.1
	DefaultScaleMax          = 0.5
	DefaultWorkers           = 1
	DefaultPlacementAttempts = 8
)

// ScaleRange bounds the uniform distribution sprite scale factors are drawn from.
type ScaleRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Draw returns a factor in [Min, Max].
func (r ScaleRange) Draw(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Validate checks 0 < Min <= Max.
func (r ScaleRange) Validate() error {
	if r.Min <= 0 {
		return fmt.Errorf("scale min must be positive, got %v", r.Min)
	}
	if r.Min > r.Max {
		return fmt.Errorf("scale min %v exceeds max %v", r.Min, r.Max)
	}
	return nil
}

// Config holds everything a batch run needs.
type Config struct {
	BackgroundDir string     `json:"background_dir"`
	ObjectDir     string     `json:"object_dir"`
	OutputDir     string     `json:"output_dir"`
	Count         int        `json:"count"`
	Scale         ScaleRange `json:"scale"`

	// Seed for scene sampling. Zero picks a time-based seed, which is
	// reported back in the Summary.
	Seed uint64 `json:"seed"`

	// Workers is the number of scenes generated concurrently.
	Workers int `json:"workers"`

	JPEGQuality       int `json:"jpeg_quality"`
	PlacementAttempts int `json:"placement_attempts"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		BackgroundDir:     DefaultBackgroundDir,
		ObjectDir:         DefaultObjectDir,
		OutputDir:         DefaultOutputDir,
		Count:             DefaultCount,
		Scale:             ScaleRange{Min: DefaultScaleMin, Max: DefaultScaleMax},
		Workers:           DefaultWorkers,
		JPEGQuality:       imaging.DefaultJPEGQuality,
		PlacementAttempts: DefaultPlacementAttempts,
	}
}

// LoadConfigFile reads a JSON config file on top of cfg. Fields missing
// from the file keep their current values.
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Count < 1 {
		errs = append(errs, fmt.Errorf("count must be at least 1, got %d", c.Count))
	}
	if err := c.Scale.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg quality must be in 1-100, got %d", c.JPEGQuality))
	}
	if c.PlacementAttempts < 1 {
		errs = append(errs, fmt.Errorf("placement attempts must be at least 1, got %d", c.PlacementAttempts))
	}
	return errors.Join(errs...)
}
