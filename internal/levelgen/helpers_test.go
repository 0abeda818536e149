package levelgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// rgbBitmap is a 3 bytes-per-pixel Source for tests.
type rgbBitmap struct {
	w, h int
	pix  []byte
}

func (b *rgbBitmap) Width() int         { return b.w }
func (b *rgbBitmap) Height() int        { return b.h }
func (b *rgbBitmap) BytesPerPixel() int { return 3 }
func (b *rgbBitmap) Pix() []byte        { return b.pix }

// bitmapOf builds a bitmap from rows of '#' (white) and '.' (black).
func bitmapOf(rows ...string) *rgbBitmap {
	b := &rgbBitmap{h: len(rows)}
	if len(rows) > 0 {
		b.w = len(rows[0])
	}
	b.pix = make([]byte, b.w*b.h*3)
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				o := (y*b.w + x) * 3
				b.pix[o], b.pix[o+1], b.pix[o+2] = 255, 255, 255
			}
		}
	}
	return b
}

func randomBitmap(r *rand.Rand, w, h int, fill float64) *rgbBitmap {
	b := &rgbBitmap{w: w, h: h, pix: make([]byte, w*h*3)}
	for k := 0; k < w*h; k++ {
		if r.Float64() < fill {
			b.pix[k*3], b.pix[k*3+1], b.pix[k*3+2] = 200, 180, 90
		}
	}
	return b
}

func compile(t *testing.T, s Settings, src Source) *CompiledLevel {
	t.Helper()
	g, err := NewGenerator(s)
	require.NoError(t, err)
	lvl, err := g.Compile(src)
	require.NoError(t, err)
	return lvl
}
