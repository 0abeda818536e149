package batch

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"silhouette/internal/bitmap"
	"silhouette/internal/cleanup"
	"silhouette/internal/levelgen"
	"silhouette/internal/meshfile"
	"silhouette/internal/preview"
	"silhouette/internal/raster"
)

// ErrCoverage is reported when the floor does not re-rasterize to the
// source occupancy.
var ErrCoverage = errors.New("batch: floor coverage mismatch")

// Config holds all shared settings for a batch run.
type Config struct {
	LevelsDir       string
	Settings        levelgen.Settings
	WorldScale      float32
	MinIslandPixels int
	Preview         bool
	PreviewScale    int
	Verify          bool
	Log             *zap.Logger
}

// Result holds the outcome of compiling one level.
type Result struct {
	Name     string
	Source   string
	Success  bool
	Error    string
	Cleared  int
	Stats    levelgen.Stats
	Files    meshfile.Paths
	Duration time.Duration
}

// Run compiles every entry in order. A failing level is recorded in its
// Result and the run continues with the next one.
func Run(cfg Config, entries []bitmap.Entry) []Result {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	results := make([]Result, len(entries))

	gen, err := levelgen.NewGenerator(cfg.Settings, levelgen.WithLogger(log))
	if err != nil {
		for i, e := range entries {
			results[i] = Result{Name: e.Name, Source: e.Path, Error: err.Error()}
		}
		return results
	}

	start := time.Now()
	for i, e := range entries {
		t0 := time.Now()
		res := processLevel(cfg, gen, e, log)
		res.Duration = time.Since(t0)
		results[i] = res

		if res.Success {
			log.Info("level written",
				zap.String("name", e.Name),
				zap.Int("progress", i+1),
				zap.Int("total", len(entries)),
				zap.Int("main_tris", res.Stats.MainTris),
				zap.Int("nav_tris", res.Stats.NavTris),
				zap.Duration("took", res.Duration))
		} else {
			log.Error("level failed",
				zap.String("name", e.Name),
				zap.String("source", e.Path),
				zap.String("error", res.Error))
		}
	}
	log.Debug("batch finished", zap.Int("levels", len(entries)), zap.Duration("took", time.Since(start)))
	return results
}

func processLevel(cfg Config, gen *levelgen.Generator, e bitmap.Entry, log *zap.Logger) Result {
	res := Result{Name: e.Name, Source: e.Path}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	img, err := bitmap.Load(e.Path)
	if err != nil {
		return fail(err)
	}

	if cfg.MinIslandPixels > 0 {
		img, res.Cleared = cleanup.RemoveSmallIslands(img, cfg.MinIslandPixels)
		if res.Cleared > 0 {
			log.Debug("removed small islands", zap.String("name", e.Name), zap.Int("pixels", res.Cleared))
		}
	}

	lvl, err := gen.Compile(img)
	if err != nil {
		return fail(err)
	}
	res.Stats = lvl.Stats

	if cfg.Verify {
		cov := raster.Coverage(lvl.Main.Triangles(), lvl.Occupancy)
		if missing, extra := raster.Diff(cov, lvl.Occupancy); missing+extra > 0 {
			return fail(fmt.Errorf("%w: %d missing, %d extra", ErrCoverage, missing, extra))
		}
	}

	prepared, err := meshfile.Prepare(lvl.Render(), lvl.Nav, lvl.Collision, lvl.NavMask, cfg.WorldScale)
	if err != nil {
		return fail(err)
	}
	res.Files, err = meshfile.WriteLevel(cfg.LevelsDir, e.Name, prepared)
	if err != nil {
		return fail(err)
	}

	if cfg.Preview {
		pic := preview.Render(lvl.Occupancy, lvl.Border, lvl.NavMask, cfg.PreviewScale)
		if err := preview.Write(res.Files.Preview, pic); err != nil {
			return fail(err)
		}
	} else {
		res.Files.Preview = ""
	}

	res.Success = true
	return res
}

// Summarize counts successful and failed results.
func Summarize(results []Result) (ok, failed int) {
	for _, r := range results {
		if r.Success {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}
