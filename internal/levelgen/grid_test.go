package levelgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOccupancyGrid_Padding(t *testing.T) {
	g, err := NewOccupancyGrid(bitmapOf(
		"#.",
		".#",
	))
	require.NoError(t, err)

	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 4, g.Height())
	assert.True(t, g.At(1, 1))
	assert.False(t, g.At(2, 1))
	assert.True(t, g.At(2, 2))
	assert.Equal(t, 2, g.Occupied())

	for i := 0; i < g.Width(); i++ {
		assert.False(t, g.At(i, 0), "top ring")
		assert.False(t, g.At(i, g.Height()-1), "bottom ring")
	}
	assert.False(t, g.At(-1, 2))
	assert.False(t, g.At(2, 99))
}

func TestNewOccupancyGrid_Threshold(t *testing.T) {
	tests := []struct {
		name string
		rgb  [3]byte
		want bool
	}{
		{"white", [3]byte{255, 255, 255}, true},
		{"dim gray", [3]byte{1, 1, 1}, true},
		{"black", [3]byte{0, 0, 0}, false},
		{"magenta", [3]byte{255, 0, 255}, false},
		{"no blue", [3]byte{10, 20, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &rgbBitmap{w: 1, h: 1, pix: tt.rgb[:]}
			g, err := NewOccupancyGrid(src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.At(1, 1))
		})
	}
}

type rgbaBitmap struct{ rgbBitmap }

func (b *rgbaBitmap) BytesPerPixel() int { return 4 }

func TestNewOccupancyGrid_FourChannels(t *testing.T) {
	src := &rgbaBitmap{rgbBitmap{w: 2, h: 1, pix: []byte{
		0, 0, 0, 255,
		9, 9, 9, 0,
	}}}
	g, err := NewOccupancyGrid(src)
	require.NoError(t, err)
	assert.False(t, g.At(1, 1))
	assert.True(t, g.At(2, 1))
}

func TestNewOccupancyGrid_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		src  Source
	}{
		{"nil", nil},
		{"short buffer", &rgbBitmap{w: 4, h: 4, pix: make([]byte, 10)}},
		{"negative size", &rgbBitmap{w: -1, h: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOccupancyGrid(tt.src)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestNewOccupancyGrid_ZeroSized(t *testing.T) {
	g, err := NewOccupancyGrid(&rgbBitmap{})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Zero(t, g.Occupied())
}
