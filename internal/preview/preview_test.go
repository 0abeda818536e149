package preview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"

	"silhouette/internal/bitmap"
	"silhouette/internal/levelgen"
)

func compileSquare(t *testing.T, size, margin int) *levelgen.CompiledLevel {
	t.Helper()
	img := bitmap.NewBlank(size, size)
	for y := margin; y < size-margin; y++ {
		for x := margin; x < size-margin; x++ {
			img.Set(x, y, 255, 255, 255)
		}
	}
	g, err := levelgen.NewGenerator(levelgen.DefaultSettings())
	require.NoError(t, err)
	c, err := g.Compile(img)
	require.NoError(t, err)
	return c
}

func TestRender_Colors(t *testing.T) {
	c := compileSquare(t, 9, 1)
	img := Render(c.Occupancy, nil, c.NavMask, 3)
	require.Equal(t, 27, img.Bounds().Dx())
	require.Equal(t, 27, img.Bounds().Dy())

	assert.Equal(t, colorEmpty, img.NRGBAAt(0, 0))
	// Pixel (1,1) is floor on the outer ring, (4,4) is the navigable center.
	assert.Equal(t, colorFloor, img.NRGBAAt(3*1+1, 3*1+1))
	assert.Equal(t, colorNav, img.NRGBAAt(3*4+1, 3*4+1))
}

func TestRender_Border(t *testing.T) {
	c := compileSquare(t, 6, 1)
	img := Render(c.Occupancy, c.Border, nil, 4)

	red := 0
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			if img.NRGBAAt(x, y) == colorBorder {
				red++
			}
		}
	}
	assert.NotZero(t, red)
	assert.Equal(t, colorFloor, img.NRGBAAt(12, 12))
}

func TestRender_Empty(t *testing.T) {
	c := compileSquare(t, 0, 0)
	img := Render(c.Occupancy, c.Border, c.NavMask, 0)
	assert.True(t, img.Bounds().Empty())
}

func TestWrite(t *testing.T) {
	c := compileSquare(t, 8, 2)
	img := Render(c.Occupancy, c.Border, c.NavMask, 2)
	path := filepath.Join(t.TempDir(), "lvl_preview.webp")
	require.NoError(t, Write(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := webp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), got.Bounds())

	assert.Error(t, Write(filepath.Join(t.TempDir(), "missing", "x.webp"), img))
}
