package levelgen

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when the source bitmap cannot be read.
var ErrInvalidInput = errors.New("levelgen: invalid input bitmap")

// Source is a read-only decoded pixel buffer. Rows are tightly packed,
// channels start with R, G, B.
type Source interface {
	Width() int
	Height() int
	BytesPerPixel() int
	Pix() []byte
}

// PixelOccupied reports whether a pixel counts as solid: none of its
// R, G, B channels is zero.
func PixelOccupied(px []byte) bool {
	return px[0] != 0 && px[1] != 0 && px[2] != 0
}

// OccupancyGrid is the thresholded bitmap padded by one always-empty cell
// on every side. Pixel (x, y) lives at grid index (x+1, y+1).
type OccupancyGrid struct {
	w, h  int
	cells []bool
}

// NewOccupancyGrid thresholds src into a padded boolean grid.
// A zero-sized bitmap is valid and yields an all-empty 2×2 grid.
func NewOccupancyGrid(src Source) (*OccupancyGrid, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidInput)
	}
	w, h, bpp := src.Width(), src.Height(), src.BytesPerPixel()
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrInvalidInput, w, h)
	}
	if bpp < 3 {
		return nil, fmt.Errorf("%w: %d bytes per pixel, need at least 3", ErrInvalidInput, bpp)
	}
	pix := src.Pix()
	if len(pix) < w*h*bpp {
		return nil, fmt.Errorf("%w: buffer holds %d bytes, need %d", ErrInvalidInput, len(pix), w*h*bpp)
	}

	g := &OccupancyGrid{w: w + 2, h: h + 2}
	g.cells = make([]bool, g.w*g.h)
	for y := 0; y < h; y++ {
		row := y * w * bpp
		for x := 0; x < w; x++ {
			off := row + x*bpp
			if PixelOccupied(pix[off : off+3]) {
				g.cells[(y+1)*g.w+x+1] = true
			}
		}
	}
	return g, nil
}

// Width returns the padded grid width.
func (g *OccupancyGrid) Width() int { return g.w }

// Height returns the padded grid height.
func (g *OccupancyGrid) Height() int { return g.h }

// At returns the occupancy at grid index (i, j). Out of range reads are empty.
func (g *OccupancyGrid) At(i, j int) bool {
	if i < 0 || j < 0 || i >= g.w || j >= g.h {
		return false
	}
	return g.cells[j*g.w+i]
}

// Occupied counts solid grid cells.
func (g *OccupancyGrid) Occupied() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}
