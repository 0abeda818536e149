package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"

	"silhouette/internal/levelgen"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid")

// Config holds all configurable paths and compile settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	InputDir  string `json:"input_dir"`
	LevelsDir string `json:"levels_dir"`

	// Compile settings
	NavMeshScalingFactor int     `json:"nav_mesh_scaling_factor"`
	NavMeshErosionFactor int     `json:"nav_mesh_erosion_factor"`
	WallDepth            float32 `json:"wall_depth"`
	WorldScale           float32 `json:"world_scale"`
	MinIslandPixels      int     `json:"min_island_pixels"`

	// Output extras
	Preview      bool `json:"preview"`
	PreviewScale int  `json:"preview_scale"`
	Verify       bool `json:"verify"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	erosionSet bool
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// Zero is a meaningful erosion factor, so remember whether the file had one.
	var probe struct {
		Erosion *int `json:"nav_mesh_erosion_factor"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Erosion != nil {
		cfg.erosionSet = true
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values (and -1 for NavErode) mean "not given".
type Flags struct {
	InputDir  string
	LevelsDir string
	NavScale  int
	NavErode  int
	WallDepth float64
	Scale     float64
	MinIsland int
	Preview   bool
	Verify    bool
	LogLevel  string
	LogFile   string
}

// Resolve applies flag overrides, resolves relative paths against BaseDir
// and fills defaults. CLI flags take priority when given.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.LevelsDir != "" {
		c.LevelsDir = flags.LevelsDir
	}
	if flags.NavScale != 0 {
		c.NavMeshScalingFactor = flags.NavScale
	}
	if flags.NavErode >= 0 {
		c.NavMeshErosionFactor = flags.NavErode
		c.erosionSet = true
	}
	if flags.WallDepth != 0 {
		c.WallDepth = float32(flags.WallDepth)
	}
	if flags.Scale != 0 {
		c.WorldScale = float32(flags.Scale)
	}
	if flags.MinIsland != 0 {
		c.MinIslandPixels = flags.MinIsland
	}
	if flags.Preview {
		c.Preview = true
	}
	if flags.Verify {
		c.Verify = true
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}
	if c.InputDir == "" {
		c.InputDir = filepath.Join(c.BaseDir, "silhouettes")
	} else if !filepath.IsAbs(c.InputDir) {
		c.InputDir = filepath.Join(c.BaseDir, c.InputDir)
	}
	if c.LevelsDir == "" {
		c.LevelsDir = filepath.Join(c.BaseDir, "levels")
	} else if !filepath.IsAbs(c.LevelsDir) {
		c.LevelsDir = filepath.Join(c.BaseDir, c.LevelsDir)
	}
	if c.LogFile != "" && !filepath.IsAbs(c.LogFile) {
		c.LogFile = filepath.Join(c.BaseDir, c.LogFile)
	}

	// Defaults for compile settings
	def := levelgen.DefaultSettings()
	if c.NavMeshScalingFactor == 0 {
		c.NavMeshScalingFactor = def.NavMeshScalingFactor
	}
	if !c.erosionSet {
		c.NavMeshErosionFactor = def.NavMeshErosionFactor
	}
	if c.WallDepth == 0 {
		c.WallDepth = def.WallDepth
	}
	if c.WorldScale == 0 {
		c.WorldScale = 1
	}
	if c.PreviewScale == 0 {
		c.PreviewScale = 4
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !(c.WorldScale > 0) || math.IsInf(float64(c.WorldScale), 0) {
		return fmt.Errorf("%w: world_scale %g must be positive", ErrInvalidConfig, c.WorldScale)
	}
	if c.MinIslandPixels < 0 {
		return fmt.Errorf("%w: min_island_pixels %d is negative", ErrInvalidConfig, c.MinIslandPixels)
	}
	if c.PreviewScale < 1 {
		return fmt.Errorf("%w: preview_scale %d must be at least 1", ErrInvalidConfig, c.PreviewScale)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Settings returns the compile settings carried by c.
func (c Config) Settings() levelgen.Settings {
	return levelgen.Settings{
		NavMeshScalingFactor: c.NavMeshScalingFactor,
		NavMeshErosionFactor: c.NavMeshErosionFactor,
		WallDepth:            c.WallDepth,
	}
}
