package levelgen

import "github.com/go-gl/mathgl/mgl32"

// mergeRuns replaces every straight run of half-solid cells with one quad
// and one border segment. Rows carry top/bottom runs, columns left/right.
// It returns the number of runs emitted.
func mergeRuns(cells *CellGrid, main *TriangleLayer, border *BorderLayer) int {
	runs := 0
	for j := 0; j < cells.H; j++ {
		runs += scanRow(cells, j, CaseRunBottom, func(i0, i1 int) {
			x0, x1, z := float32(i0), float32(i1+1), float32(j)
			main.AddFloorQuad(
				mgl32.Vec3{x0, 0, z + 0.5}, mgl32.Vec3{x1, 0, z + 0.5},
				mgl32.Vec3{x1, 0, z + 1}, mgl32.Vec3{x0, 0, z + 1},
				TagRunBottom)
			border.AddSegment(mgl32.Vec3{x0, 0, z + 0.5}, mgl32.Vec3{x1, 0, z + 0.5})
		})
		runs += scanRow(cells, j, CaseRunTop, func(i0, i1 int) {
			x0, x1, z := float32(i0), float32(i1+1), float32(j)
			main.AddFloorQuad(
				mgl32.Vec3{x0, 0, z}, mgl32.Vec3{x1, 0, z},
				mgl32.Vec3{x1, 0, z + 0.5}, mgl32.Vec3{x0, 0, z + 0.5},
				TagRunTop)
			border.AddSegment(mgl32.Vec3{x1, 0, z + 0.5}, mgl32.Vec3{x0, 0, z + 0.5})
		})
	}
	for i := 0; i < cells.W; i++ {
		runs += scanColumn(cells, i, CaseRunLeft, func(j0, j1 int) {
			x, z0, z1 := float32(i), float32(j0), float32(j1+1)
			main.AddFloorQuad(
				mgl32.Vec3{x, 0, z0}, mgl32.Vec3{x + 0.5, 0, z0},
				mgl32.Vec3{x + 0.5, 0, z1}, mgl32.Vec3{x, 0, z1},
				TagRunLeft)
			border.AddSegment(mgl32.Vec3{x + 0.5, 0, z0}, mgl32.Vec3{x + 0.5, 0, z1})
		})
		runs += scanColumn(cells, i, CaseRunRight, func(j0, j1 int) {
			x, z0, z1 := float32(i), float32(j0), float32(j1+1)
			main.AddFloorQuad(
				mgl32.Vec3{x + 0.5, 0, z0}, mgl32.Vec3{x + 1, 0, z0},
				mgl32.Vec3{x + 1, 0, z1}, mgl32.Vec3{x + 0.5, 0, z1},
				TagRunRight)
			border.AddSegment(mgl32.Vec3{x + 0.5, 0, z1}, mgl32.Vec3{x + 0.5, 0, z0})
		})
	}
	return runs
}

// scanRow calls emit once per maximal run of want in row j.
func scanRow(cells *CellGrid, j int, want CellCase, emit func(i0, i1 int)) int {
	runs, start := 0, -1
	for i := 0; i <= cells.W; i++ {
		on := i < cells.W && cells.Case(i, j) == want
		switch {
		case on && start < 0:
			start = i
		case !on && start >= 0:
			emit(start, i-1)
			runs++
			start = -1
		}
	}
	return runs
}

// scanColumn calls emit once per maximal run of want in column i.
func scanColumn(cells *CellGrid, i int, want CellCase, emit func(j0, j1 int)) int {
	runs, start := 0, -1
	for j := 0; j <= cells.H; j++ {
		on := j < cells.H && cells.Case(i, j) == want
		switch {
		case on && start < 0:
			start = j
		case !on && start >= 0:
			emit(start, j-1)
			runs++
			start = -1
		}
	}
	return runs
}
