// Package raster rasterizes floor triangles back onto the pixel grid so a
// compiled level can be checked against its source occupancy.
package raster

import "silhouette/internal/levelgen"

// Buffer counts triangle hits per grid sample. Sample (i,j) is the world
// point (i, 0, j), which is the center of padded grid index (i,j).
type Buffer struct {
	Width  int
	Height int
	Hits   []uint16 // len = W*H
}

// NewBuffer allocates a zeroed w×h buffer.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{
		Width:  w,
		Height: h,
		Hits:   make([]uint16, w*h),
	}
}

// Covered reports whether any triangle touched sample (i,j).
func (b *Buffer) Covered(i, j int) bool {
	if i < 0 || j < 0 || i >= b.Width || j >= b.Height {
		return false
	}
	return b.Hits[j*b.Width+i] > 0
}

// Coverage rasterizes tris onto a buffer sized like occ.
func Coverage(tris []levelgen.GridTriangle, occ *levelgen.OccupancyGrid) *Buffer {
	b := NewBuffer(occ.Width(), occ.Height())
	for _, t := range tris {
		FillTriangle(b, t)
	}
	return b
}

// Diff compares coverage with occupancy. missing counts occupied samples no
// triangle covers; extra counts empty samples some triangle covers.
func Diff(b *Buffer, occ *levelgen.OccupancyGrid) (missing, extra int) {
	for j := 0; j < occ.Height(); j++ {
		for i := 0; i < occ.Width(); i++ {
			switch covered := b.Covered(i, j); {
			case occ.At(i, j) && !covered:
				missing++
			case !occ.At(i, j) && covered:
				extra++
			}
		}
	}
	return missing, extra
}
