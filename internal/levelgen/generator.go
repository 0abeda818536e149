// Package levelgen compiles a black/white level silhouette into floor,
// wall, collision and navigation geometry.
//
// The pipeline is deterministic and single-threaded:
//
//	bitmap → OccupancyGrid → case table → runs → blocks → nav mask → walls
//
// World X follows bitmap columns, world Z follows rows, Y is up. Pixel
// (x, y) sits at world (x+1, 0, y+1) because of the one-cell padding.
package levelgen

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrInvalidSettings is returned for out-of-range generator settings.
var ErrInvalidSettings = errors.New("levelgen: invalid settings")

// Settings are fixed for the lifetime of a Generator.
type Settings struct {
	NavMeshScalingFactor int
	NavMeshErosionFactor int
	WallDepth            float32
}

// DefaultSettings returns full-resolution, non-eroded nav and one unit deep walls.
func DefaultSettings() Settings {
	return Settings{
		NavMeshScalingFactor: 1,
		NavMeshErosionFactor: 0,
		WallDepth:            1,
	}
}

// Validate checks the setting ranges.
func (s Settings) Validate() error {
	if s.NavMeshScalingFactor < 1 {
		return fmt.Errorf("%w: nav mesh scaling factor %d < 1", ErrInvalidSettings, s.NavMeshScalingFactor)
	}
	if s.NavMeshErosionFactor < 0 {
		return fmt.Errorf("%w: nav mesh erosion factor %d < 0", ErrInvalidSettings, s.NavMeshErosionFactor)
	}
	if s.WallDepth <= 0 {
		return fmt.Errorf("%w: wall depth %g <= 0", ErrInvalidSettings, s.WallDepth)
	}
	return nil
}

// Stats summarises one compile.
type Stats struct {
	Width         int `json:"width"`
	Height        int `json:"height"`
	Occupied      int `json:"occupied"`
	Corners       int `json:"corners"`
	Pinches       int `json:"pinches"`
	ThreeQuarters int `json:"three_quarters"`
	Runs          int `json:"runs"`
	Blocks        int `json:"blocks"`
	MainTris      int `json:"main_tris"`
	WallTris      int `json:"wall_tris"`
	NavTris       int `json:"nav_tris"`
	BorderSegs    int `json:"border_segments"`
	NavCells      int `json:"nav_cells"`
	Dropped       int `json:"dropped"`
}

// CompiledLevel is the output of one Compile call.
type CompiledLevel struct {
	Occupancy *OccupancyGrid
	Cells     *CellGrid
	Main      *TriangleLayer // floor
	Walls     *TriangleLayer // extruded border, render variant
	Collision *TriangleLayer // extruded border, collision variant
	Nav       *TriangleLayer // nav-only floor
	Border    *BorderLayer
	NavMask   *NavMask
	Stats     Stats
}

// Render returns a finalized layer holding the floor followed by the walls.
func (c *CompiledLevel) Render() *TriangleLayer {
	r := NewTriangleLayer("render", nil)
	r.AddLayer(c.Main)
	r.AddLayer(c.Walls)
	r.Finalize()
	return r
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for drop and summary messages.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// Generator compiles silhouettes. It is not safe for concurrent use; each
// Compile starts from a clean state.
type Generator struct {
	settings Settings
	log      *zap.Logger

	main, walls, collision, nav *TriangleLayer
	border                      *BorderLayer
}

// NewGenerator validates s and returns a generator.
func NewGenerator(s Settings, opts ...Option) (*Generator, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{settings: s, log: zap.NewNop()}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

// Settings returns the generator settings.
func (g *Generator) Settings() Settings { return g.settings }

func (g *Generator) reset() {
	g.main = NewTriangleLayer("main", g.log)
	g.walls = NewTriangleLayer("walls", g.log)
	g.collision = NewTriangleLayer("collision", g.log)
	g.nav = NewTriangleLayer("nav", g.log)
	g.border = NewBorderLayer(g.log)
}

// Compile runs the whole pipeline on src.
func (g *Generator) Compile(src Source) (*CompiledLevel, error) {
	g.reset()

	grid, err := NewOccupancyGrid(src)
	if err != nil {
		return nil, err
	}

	cells := classify(grid, g.main, g.border)
	runs := mergeRuns(cells, g.main, g.border)
	blocks := growBlocks(cells, g.main)

	mask := BuildNavMask(cells, NavOptions{
		ScalingFactor: g.settings.NavMeshScalingFactor,
		ErosionFactor: g.settings.NavMeshErosionFactor,
	})
	triangulateNav(mask, g.nav)

	Extrude(g.border, g.settings.WallDepth, g.walls, g.collision)

	for _, l := range []*TriangleLayer{g.main, g.walls, g.collision, g.nav} {
		l.Finalize()
	}

	lvl := &CompiledLevel{
		Occupancy: grid,
		Cells:     cells,
		Main:      g.main,
		Walls:     g.walls,
		Collision: g.collision,
		Nav:       g.nav,
		Border:    g.border,
		NavMask:   mask,
		Stats: Stats{
			Width:         grid.Width() - 2,
			Height:        grid.Height() - 2,
			Occupied:      grid.Occupied(),
			Corners:       cells.Count(KindCorner),
			Pinches:       cells.Count(KindPinch),
			ThreeQuarters: cells.Count(KindThreeQuarter),
			Runs:          runs,
			Blocks:        len(blocks),
			MainTris:      g.main.Len(),
			WallTris:      g.walls.Len(),
			NavTris:       g.nav.Len(),
			BorderSegs:    g.border.Len(),
			NavCells:      mask.Count(),
			Dropped:       g.main.Dropped() + g.walls.Dropped() + g.collision.Dropped() + g.nav.Dropped(),
		},
	}

	g.log.Debug("level compiled",
		zap.Int("width", lvl.Stats.Width),
		zap.Int("height", lvl.Stats.Height),
		zap.Int("main_tris", lvl.Stats.MainTris),
		zap.Int("border_segments", lvl.Stats.BorderSegs),
		zap.Int("runs", runs),
		zap.Int("blocks", len(blocks)),
		zap.Int("nav_cells", lvl.Stats.NavCells),
		zap.Int("dropped", lvl.Stats.Dropped))

	// Hand the layers over; the next Compile allocates fresh ones.
	g.main, g.walls, g.collision, g.nav, g.border = nil, nil, nil, nil, nil
	return lvl, nil
}
