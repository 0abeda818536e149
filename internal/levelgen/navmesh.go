package levelgen

import "github.com/go-gl/mathgl/mgl32"

// NavMask is the navigable cell grid handed to the path-finder. Cell (i, j)
// spans [i*CellSize, (i+1)*CellSize] on X and the same on Z.
type NavMask struct {
	Width, Height int
	CellSize      float32
	Cells         []bool
}

func newNavMask(w, h int, cellSize float32) *NavMask {
	return &NavMask{Width: w, Height: h, CellSize: cellSize, Cells: make([]bool, w*h)}
}

// At returns cell (i, j); out of range cells are not navigable.
func (m *NavMask) At(i, j int) bool {
	if i < 0 || j < 0 || i >= m.Width || j >= m.Height {
		return false
	}
	return m.Cells[j*m.Width+i]
}

// Count returns the number of navigable cells.
func (m *NavMask) Count() int {
	n := 0
	for _, c := range m.Cells {
		if c {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (m *NavMask) Clone() *NavMask {
	c := *m
	c.Cells = append([]bool(nil), m.Cells...)
	return &c
}

// SubsetOf reports whether every navigable cell of m is navigable in o.
// Masks of different shape are never subsets.
func (m *NavMask) SubsetOf(o *NavMask) bool {
	if m.Width != o.Width || m.Height != o.Height {
		return false
	}
	for k, c := range m.Cells {
		if c && !o.Cells[k] {
			return false
		}
	}
	return true
}

// NavOptions controls the nav pass.
type NavOptions struct {
	ScalingFactor int // point-sample every Nth cell, 1 keeps full resolution
	ErosionFactor int // number of erosion passes
}

// Sentinel values used while growing the wall margin.
const (
	navBlocked  uint8 = 0
	navOpen     uint8 = 1
	navShrunken uint8 = 2
)

// growVisited starts from the solid, border-free cells and removes every
// one touching a border-bearing cell in its 8-neighbourhood. The sentinel
// keeps freshly removed cells from spreading the margin further.
func growVisited(cells *CellGrid) *NavMask {
	buf := make([]uint8, cells.W*cells.H)
	for j := 0; j < cells.H; j++ {
		for i := 0; i < cells.W; i++ {
			if cells.Case(i, j) == CaseSolid && cells.Visited(i, j) {
				buf[j*cells.W+i] = navOpen
			}
		}
	}
	for j := 0; j < cells.H; j++ {
		for i := 0; i < cells.W; i++ {
			if cells.Visited(i, j) {
				continue
			}
			for dj := -1; dj <= 1; dj++ {
				for di := -1; di <= 1; di++ {
					ni, nj := i+di, j+dj
					if !cells.in(ni, nj) {
						continue
					}
					if k := nj*cells.W + ni; buf[k] == navOpen {
						buf[k] = navShrunken
					}
				}
			}
		}
	}

	m := newNavMask(cells.W, cells.H, 1)
	for k, v := range buf {
		m.Cells[k] = v == navOpen
	}
	return m
}

// DownScale point-samples every nth cell. n <= 1 returns m unchanged.
func (m *NavMask) DownScale(n int) *NavMask {
	if n <= 1 {
		return m
	}
	w := (m.Width + n - 1) / n
	h := (m.Height + n - 1) / n
	out := newNavMask(w, h, m.CellSize*float32(n))
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			out.Cells[j*w+i] = m.At(i*n, j*n)
		}
	}
	return out
}

// Erode runs k erosion passes in place. A cell survives a pass only when it
// is off the mask border and all four edge neighbours are navigable.
func (m *NavMask) Erode(k int) {
	if k <= 0 || len(m.Cells) == 0 {
		return
	}
	next := make([]bool, len(m.Cells))
	for pass := 0; pass < k; pass++ {
		for j := 0; j < m.Height; j++ {
			for i := 0; i < m.Width; i++ {
				idx := j*m.Width + i
				next[idx] = m.Cells[idx] &&
					i > 0 && j > 0 && i < m.Width-1 && j < m.Height-1 &&
					m.Cells[idx-1] && m.Cells[idx+1] &&
					m.Cells[idx-m.Width] && m.Cells[idx+m.Width]
			}
		}
		m.Cells, next = next, m.Cells
	}
}

// BuildNavMask runs the margin, down-scale and erosion steps in that order.
func BuildNavMask(cells *CellGrid, opts NavOptions) *NavMask {
	m := growVisited(cells)
	m = m.DownScale(opts.ScalingFactor)
	m.Erode(opts.ErosionFactor)
	return m
}

// triangulateNav emits one quad per navigable cell at the mask's cell size.
func triangulateNav(m *NavMask, layer *TriangleLayer) {
	s := m.CellSize
	for j := 0; j < m.Height; j++ {
		for i := 0; i < m.Width; i++ {
			if !m.Cells[j*m.Width+i] {
				continue
			}
			x0, z0 := float32(i)*s, float32(j)*s
			layer.AddFloorQuad(
				mgl32.Vec3{x0, 0, z0}, mgl32.Vec3{x0 + s, 0, z0},
				mgl32.Vec3{x0 + s, 0, z0 + s}, mgl32.Vec3{x0, 0, z0 + s},
				TagInterior)
		}
	}
}
