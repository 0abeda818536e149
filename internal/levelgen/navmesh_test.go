package levelgen

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareBitmap(n int) *rgbBitmap {
	rows := make([]string, n)
	for k := range rows {
		rows[k] = strings.Repeat("#", n)
	}
	return bitmapOf(rows...)
}

func TestGrowVisited_WallMargin(t *testing.T) {
	lvl := compile(t, DefaultSettings(), squareBitmap(7))

	// 8×8 cells, solid cells 1..6, the ring next to the border cells is dropped.
	m := lvl.NavMask
	require.Equal(t, 8, m.Width)
	require.Equal(t, 8, m.Height)
	assert.Equal(t, 16, m.Count())
	assert.True(t, m.At(2, 2))
	assert.True(t, m.At(5, 5))
	assert.False(t, m.At(1, 1))
	assert.False(t, m.At(6, 3))
	assert.Equal(t, 32, lvl.Nav.Len())
}

func TestNavMask_Erode(t *testing.T) {
	lvl := compile(t, DefaultSettings(), squareBitmap(7))

	once := lvl.NavMask.Clone()
	once.Erode(1)
	assert.Equal(t, 4, once.Count())
	assert.True(t, once.At(3, 3))
	assert.True(t, once.At(4, 4))

	twice := lvl.NavMask.Clone()
	twice.Erode(2)
	assert.Zero(t, twice.Count())
}

func TestNavMask_ErodeTouchesImageBorder(t *testing.T) {
	m := newNavMask(3, 3, 1)
	for k := range m.Cells {
		m.Cells[k] = true
	}
	m.Erode(1)
	assert.Equal(t, 1, m.Count())
	assert.True(t, m.At(1, 1))
}

func TestNavMask_DownScale(t *testing.T) {
	lvl := compile(t, Settings{NavMeshScalingFactor: 2, WallDepth: 1}, squareBitmap(7))

	m := lvl.NavMask
	assert.Equal(t, 4, m.Width)
	assert.Equal(t, 4, m.Height)
	assert.Equal(t, float32(2), m.CellSize)
	assert.Equal(t, 4, m.Count())
	assert.True(t, m.At(1, 1))
	assert.True(t, m.At(2, 2))

	require.Equal(t, 8, lvl.Nav.Len())
	b, ok := lvl.Nav.Bounds()
	require.True(t, ok)
	assert.Equal(t, float32(2), b.Min.X())
	assert.Equal(t, float32(6), b.Max.X())
}

func TestNavMask_DownScaleRoundsUp(t *testing.T) {
	m := newNavMask(5, 3, 1)
	m.Cells[4] = true
	out := m.DownScale(2)
	assert.Equal(t, 3, out.Width)
	assert.Equal(t, 2, out.Height)
	assert.True(t, out.At(2, 0))
}

func TestBuildNavMask_ZeroErosionKeepsMask(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, scale := range []int{1, 2, 3} {
		lvl := compile(t, DefaultSettings(), randomBitmap(r, 30, 24, 0.85))
		want := growVisited(lvl.Cells).DownScale(scale)
		got := BuildNavMask(lvl.Cells, NavOptions{ScalingFactor: scale, ErosionFactor: 0})
		assert.Equal(t, want, got, "scale %d", scale)
	}
}

func TestBuildNavMask_ErosionMonotone(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for trial := 0; trial < 10; trial++ {
		lvl := compile(t, DefaultSettings(), randomBitmap(r, 40, 32, 0.9))
		prev := BuildNavMask(lvl.Cells, NavOptions{ScalingFactor: 1})
		for k := 1; k <= 4; k++ {
			next := BuildNavMask(lvl.Cells, NavOptions{ScalingFactor: 1, ErosionFactor: k})
			assert.True(t, next.SubsetOf(prev), "trial %d: erosion %d not within %d", trial, k, k-1)
			prev = next
		}
	}
}

func TestBuildNavMask_Empty(t *testing.T) {
	lvl := compile(t, Settings{NavMeshScalingFactor: 4, NavMeshErosionFactor: 3, WallDepth: 1}, &rgbBitmap{})
	assert.Zero(t, lvl.NavMask.Count())
	assert.Zero(t, lvl.Nav.Len())
}
