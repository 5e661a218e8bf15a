// synthgen - synthetic training-image generator for object detectors
//
// Usage:
//
//	synthgen [generate] [flags]
//	synthgen serve
//	synthgen http [-addr :8080]
//	synthgen annotate -image <file> -detections <json> -o <file>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ironsheep/synthgen/internal/api"
	"github.com/ironsheep/synthgen/internal/detection"
	"github.com/ironsheep/synthgen/internal/imaging"
	"github.com/ironsheep/synthgen/internal/server"
	"github.com/ironsheep/synthgen/internal/synth"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Logs go to stderr; stdout carries MCP traffic and the run summary.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	synth.SetLogger(newLogger(os.Stderr, os.Getenv("SYNTHGEN_LOG_LEVEL")))

	cmd, args := "generate", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	} else if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "--help", "-h":
			cmd, args = args[0], args[1:]
		}
	}

	var err error
	switch cmd {
	case "generate", "gen":
		err = runGenerate(args)
	case "serve":
		err = runServe()
	case "http":
		err = runHTTP(args)
	case "annotate":
		err = runAnnotate(args)
	case "version", "--version", "-v":
		fmt.Printf("synthgen %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil && !errors.Is(err, flag.ErrHelp) {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("synthgen - composite object sprites onto backgrounds to build detector training data")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  synthgen [generate] [flags]      Generate a batch of synthetic images")
	fmt.Println("  synthgen serve                   Run the MCP server on stdin/stdout")
	fmt.Println("  synthgen http [-addr :8080]      Run the HTTP API")
	fmt.Println("  synthgen annotate [flags]        Draw detections over an image")
	fmt.Println("  synthgen version                 Print version information")
	fmt.Println()
	fmt.Println("Run 'synthgen <command> -h' for the flags of a command.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SYNTHGEN_LOG_LEVEL=debug|info|warn|error    Log verbosity (default: silent)")
}

// newLogger builds the run logger for level. An empty or unknown level
// disables logging.
func newLogger(w io.Writer, level string) *slog.Logger {
	if level == "" {
		return nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		log.Printf("Ignoring SYNTHGEN_LOG_LEVEL=%q: %v", level, err)
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func runGenerate(args []string) error {
	cfg, err := parseGenerateFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	gen, err := synth.NewGenerator(cfg, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := gen.Run(ctx)
	if summary != nil {
		fmt.Println(summary)
		for _, f := range summary.Failures {
			fmt.Printf("  skipped %s: %s\n", synth.OutputName(f.Index), f.Reason)
		}
	}
	return err
}

// parseGenerateFlags layers defaults, then the -config file, then any flag
// given explicitly.
func parseGenerateFlags(args []string, output io.Writer) (synth.Config, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(output)

	def := synth.DefaultConfig()
	var (
		configPath string
		flagCfg    = def
	)
	fs.StringVar(&configPath, "config", "", "JSON config file")
	fs.StringVar(&flagCfg.BackgroundDir, "bg", def.BackgroundDir, "Background image directory (.jpg, .png)")
	fs.StringVar(&flagCfg.ObjectDir, "objects", def.ObjectDir, "Object sprite directory (.png with alpha)")
	fs.StringVar(&flagCfg.OutputDir, "out", def.OutputDir, "Output directory")
	fs.IntVar(&flagCfg.Count, "count", def.Count, "Number of images to generate")
	fs.Float64Var(&flagCfg.Scale.Min, "scale-min", def.Scale.Min, "Minimum sprite scale")
	fs.Float64Var(&flagCfg.Scale.Max, "scale-max", def.Scale.Max, "Maximum sprite scale")
	fs.Uint64Var(&flagCfg.Seed, "seed", def.Seed, "Random seed (0 = time-based)")
	fs.IntVar(&flagCfg.Workers, "workers", def.Workers, "Images generated concurrently")
	fs.IntVar(&flagCfg.JPEGQuality, "quality", def.JPEGQuality, "JPEG quality (1-100)")
	fs.IntVar(&flagCfg.PlacementAttempts, "attempts", def.PlacementAttempts, "Scale draws before an oversized sprite is skipped")

	if err := fs.Parse(args); err != nil {
		return synth.Config{}, err
	}
	if fs.NArg() > 0 {
		return synth.Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := def
	if configPath != "" {
		if err := synth.LoadConfigFile(configPath, &cfg); err != nil {
			return synth.Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bg":
			cfg.BackgroundDir = flagCfg.BackgroundDir
		case "objects":
			cfg.ObjectDir = flagCfg.ObjectDir
		case "out":
			cfg.OutputDir = flagCfg.OutputDir
		case "count":
			cfg.Count = flagCfg.Count
		case "scale-min":
			cfg.Scale.Min = flagCfg.Scale.Min
		case "scale-max":
			cfg.Scale.Max = flagCfg.Scale.Max
		case "seed":
			cfg.Seed = flagCfg.Seed
		case "workers":
			cfg.Workers = flagCfg.Workers
		case "quality":
			cfg.JPEGQuality = flagCfg.JPEGQuality
		case "attempts":
			cfg.PlacementAttempts = flagCfg.PlacementAttempts
		}
	})

	return cfg, cfg.Validate()
}

func runServe() error {
	if os.Getenv("SYNTHGEN_LOG_LEVEL") == "debug" {
		log.Printf("synthgen MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}
	return server.New().Run()
}

func runHTTP(args []string) error {
	fs := flag.NewFlagSet("http", flag.ContinueOnError)
	addr := fs.String("addr", ":8080", "Listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r := gin.Default()
	api.RegisterRoutes(r)

	log.Printf("starting HTTP API on %s", *addr)
	if err := r.Run(*addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runAnnotate(args []string) error {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)

	var (
		imagePath     string
		detsPath      string
		output        string
		boxColor      string
		textColor     string
		centroidColor string
	)
	fs.StringVar(&imagePath, "image", "", "Image to annotate")
	fs.StringVar(&detsPath, "detections", "", "JSON array of detections")
	fs.StringVar(&output, "o", "", "Output PNG path")
	fs.StringVar(&output, "output", "", "Output PNG path")
	fs.StringVar(&boxColor, "box-color", detection.DefaultBoxHex, "Box color")
	fs.StringVar(&textColor, "text-color", detection.DefaultTextHex, "Tag text color")
	fs.StringVar(&centroidColor, "centroid-color", detection.DefaultCentroidHex, "Centroid color")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if imagePath == "" || detsPath == "" || output == "" {
		return fmt.Errorf("-image, -detections and -o are required")
	}

	palette, err := detection.ParsePalette(boxColor, textColor, centroidColor)
	if err != nil {
		return err
	}
	detector, err := detection.LoadStaticDetector(detsPath)
	if err != nil {
		return err
	}
	img, err := imaging.Load(imagePath)
	if err != nil {
		return err
	}
	dets, err := detector.Detect(context.Background(), img)
	if err != nil {
		return err
	}

	if err := imaging.WritePNG(output, detection.Annotate(img, dets, nil, palette)); err != nil {
		return err
	}
	fmt.Printf("Annotated %d detections: %s\n", len(dets), output)
	return nil
}
