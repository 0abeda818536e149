package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"silhouette/internal/batch"
	"silhouette/internal/bitmap"
	"silhouette/internal/config"
	"silhouette/internal/logging"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	inputDir := flag.String("input", "", "Directory of silhouette bitmaps (default: <base>/silhouettes)")
	levelsDir := flag.String("levels", "", "Output levels directory (default: <base>/levels)")
	navScale := flag.Int("nav-scale", 0, "Nav mesh down-scaling factor (default: 1)")
	navErode := flag.Int("nav-erode", -1, "Nav mesh erosion passes (default: 0)")
	wallDepth := flag.Float64("wall-depth", 0, "Wall extrusion depth in grid units (default: 1)")
	scale := flag.Float64("scale", 0, "Uniform world scale applied to all outputs (default: 1)")
	minIsland := flag.Int("min-island", 0, "Drop occupied islands smaller than N pixels")
	previewOn := flag.Bool("preview", false, "Write a WebP preview per level")
	verify := flag.Bool("verify", false, "Fail levels whose floor does not match the bitmap")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (default: info)")
	logFile := flag.String("log-file", "", "Also write JSON logs to this rotating file")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		InputDir:  *inputDir,
		LevelsDir: *levelsDir,
		NavScale:  *navScale,
		NavErode:  *navErode,
		WallDepth: *wallDepth,
		Scale:     *scale,
		MinIsland: *minIsland,
		Preview:   *previewOn,
		Verify:    *verify,
		LogLevel:  *logLevel,
		LogFile:   *logFile,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	// Positional files win over the input directory.
	var entries []bitmap.Entry
	if flag.NArg() > 0 {
		for _, p := range flag.Args() {
			entries = append(entries, bitmap.EntryFor(p))
		}
		var dropped []bitmap.Entry
		entries, dropped = bitmap.Dedupe(entries)
		for _, d := range dropped {
			log.Warn("skipping duplicate level name",
				zap.String("name", d.Name),
				zap.String("source", d.Path))
		}
	} else {
		entries, err = bitmap.Scan(cfg.InputDir)
		if err != nil {
			log.Error("scan input", zap.Error(err))
			os.Exit(1)
		}
	}

	if len(entries) == 0 {
		log.Info("no silhouettes to compile", zap.String("input", cfg.InputDir))
		return
	}

	log.Info("compiling levels",
		zap.Int("levels", len(entries)),
		zap.String("output", cfg.LevelsDir),
		zap.Int("nav_scale", cfg.NavMeshScalingFactor),
		zap.Int("nav_erode", cfg.NavMeshErosionFactor),
		zap.Float32("wall_depth", cfg.WallDepth),
		zap.Float32("world_scale", cfg.WorldScale))

	start := time.Now()
	results := batch.Run(batch.Config{
		LevelsDir:       cfg.LevelsDir,
		Settings:        cfg.Settings(),
		WorldScale:      cfg.WorldScale,
		MinIslandPixels: cfg.MinIslandPixels,
		Preview:         cfg.Preview,
		PreviewScale:    cfg.PreviewScale,
		Verify:          cfg.Verify,
		Log:             log,
	}, entries)

	success, failed := batch.Summarize(results)
	log.Info("done",
		zap.Int("compiled", success),
		zap.Int("failed", failed),
		zap.Duration("took", time.Since(start)))

	// Write manifest
	manifestPath := filepath.Join(cfg.LevelsDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		log.Warn("manifest write failed", zap.Error(err))
	} else {
		log.Info("manifest written", zap.String("path", manifestPath))
	}

	if failed > 0 {
		log.Sync()
		os.Exit(1)
	}
}
