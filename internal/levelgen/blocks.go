package levelgen

import "github.com/go-gl/mathgl/mgl32"

// GridBlock is an inclusive rectangle of cells.
type GridBlock struct {
	I1, J1, I2, J2 int
}

// Area returns the number of cells covered.
func (b GridBlock) Area() int {
	return (b.I2 - b.I1 + 1) * (b.J2 - b.J1 + 1)
}

type blockGrower struct {
	cells *CellGrid
	swept []bool
}

func (g *blockGrower) free(i, j int) bool {
	return g.cells.in(i, j) && g.cells.Case(i, j) == CaseSolid && !g.swept[j*g.cells.W+i]
}

func (g *blockGrower) rowFree(j, i1, i2 int) bool {
	for i := i1; i <= i2; i++ {
		if !g.free(i, j) {
			return false
		}
	}
	return true
}

func (g *blockGrower) colFree(i, j1, j2 int) bool {
	for j := j1; j <= j2; j++ {
		if !g.free(i, j) {
			return false
		}
	}
	return true
}

// grow expands a block from (i, j): first along the diagonal, then a pure
// right and a pure down probe. The larger of the two wins, right on ties.
func (g *blockGrower) grow(i, j int) GridBlock {
	b := GridBlock{I1: i, J1: j, I2: i, J2: j}
	for g.colFree(b.I2+1, b.J1, b.J2+1) && g.rowFree(b.J2+1, b.I1, b.I2) {
		b.I2++
		b.J2++
	}

	right := b
	for g.colFree(right.I2+1, right.J1, right.J2) {
		right.I2++
	}
	down := b
	for g.rowFree(down.J2+1, down.I1, down.I2) {
		down.J2++
	}
	if down.Area() > right.Area() {
		return down
	}
	return right
}

func (g *blockGrower) sweep(b GridBlock) {
	for j := b.J1; j <= b.J2; j++ {
		for i := b.I1; i <= b.I2; i++ {
			g.swept[j*g.cells.W+i] = true
			g.cells.markVisited(i, j)
		}
	}
}

// growBlocks covers every solid cell with greedy rectangles, two triangles
// each, and marks the covered cells visited. Scan order is row-major.
func growBlocks(cells *CellGrid, main *TriangleLayer) []GridBlock {
	g := &blockGrower{cells: cells, swept: make([]bool, cells.W*cells.H)}
	var blocks []GridBlock
	for j := 0; j < cells.H; j++ {
		for i := 0; i < cells.W; i++ {
			if !g.free(i, j) {
				continue
			}
			b := g.grow(i, j)
			g.sweep(b)
			blocks = append(blocks, b)

			x0, z0 := float32(b.I1), float32(b.J1)
			x1, z1 := float32(b.I2+1), float32(b.J2+1)
			main.AddFloorQuad(
				mgl32.Vec3{x0, 0, z0}, mgl32.Vec3{x1, 0, z0},
				mgl32.Vec3{x1, 0, z1}, mgl32.Vec3{x0, 0, z1},
				TagExternal)
		}
	}
	return blocks
}
