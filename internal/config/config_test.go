package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"silhouette/internal/levelgen"
)

func noFlags() Flags { return Flags{NavErode: -1} }

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "levelc.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestResolve_Defaults(t *testing.T) {
	c := Config{BaseDir: "/work"}
	c.Resolve(noFlags())

	assert.Equal(t, filepath.Join("/work", "silhouettes"), c.InputDir)
	assert.Equal(t, filepath.Join("/work", "levels"), c.LevelsDir)
	assert.Equal(t, levelgen.DefaultSettings(), c.Settings())
	assert.Equal(t, float32(1), c.WorldScale)
	assert.Equal(t, 4, c.PreviewScale)
	assert.Equal(t, "info", c.LogLevel)
	assert.NoError(t, c.Validate())
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `{
		"base_dir": "/srv/game",
		"input_dir": "art/maps",
		"levels_dir": "/abs/levels",
		"nav_mesh_scaling_factor": 2,
		"nav_mesh_erosion_factor": 3,
		"wall_depth": 2.5,
		"world_scale": 0.25,
		"preview": true,
		"log_file": "logs/levelc.log"
	}`)
	c, err := Load(path)
	require.NoError(t, err)
	c.Resolve(noFlags())

	assert.Equal(t, filepath.Join("/srv/game", "art/maps"), c.InputDir)
	assert.Equal(t, "/abs/levels", c.LevelsDir)
	assert.Equal(t, filepath.Join("/srv/game", "logs/levelc.log"), c.LogFile)
	assert.Equal(t, levelgen.Settings{NavMeshScalingFactor: 2, NavMeshErosionFactor: 3, WallDepth: 2.5}, c.Settings())
	assert.Equal(t, float32(0.25), c.WorldScale)
	assert.True(t, c.Preview)
	assert.NoError(t, c.Validate())
}

func TestResolve_FlagsWin(t *testing.T) {
	path := writeConfig(t, `{"base_dir": "/b", "nav_mesh_erosion_factor": 3, "wall_depth": 2}`)
	c, err := Load(path)
	require.NoError(t, err)

	c.Resolve(Flags{
		InputDir:  "/in",
		LevelsDir: "out",
		NavScale:  4,
		NavErode:  0,
		WallDepth: 0.5,
		Scale:     2,
		MinIsland: 6,
		Verify:    true,
		LogLevel:  "debug",
	})
	assert.Equal(t, "/in", c.InputDir)
	assert.Equal(t, filepath.Join("/b", "out"), c.LevelsDir)
	assert.Equal(t, levelgen.Settings{NavMeshScalingFactor: 4, NavMeshErosionFactor: 0, WallDepth: 0.5}, c.Settings())
	assert.Equal(t, float32(2), c.WorldScale)
	assert.Equal(t, 6, c.MinIslandPixels)
	assert.True(t, c.Verify)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `{"wall_depth": "deep"}`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"nav scale", func(c *Config) { c.NavMeshScalingFactor = -2 }},
		{"erosion", func(c *Config) { c.NavMeshErosionFactor = -1 }},
		{"wall depth", func(c *Config) { c.WallDepth = -1 }},
		{"world scale", func(c *Config) { c.WorldScale = -3 }},
		{"islands", func(c *Config) { c.MinIslandPixels = -1 }},
		{"preview scale", func(c *Config) { c.PreviewScale = -1 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{BaseDir: "/x"}
			c.Resolve(noFlags())
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}
