package levelgen

import "github.com/go-gl/mathgl/mgl32"

// CellCase is the 4-bit corner mask of a cell: TL=8, TR=4, BR=2, BL=1.
// A cell is the square between four neighbouring pixel centers. The two
// pinch cases (5, 10) never bridge: diagonal-only contact stays two corners.
type CellCase uint8

const (
	CaseEmpty     CellCase = 0
	CaseCornerBL  CellCase = 1
	CaseCornerBR  CellCase = 2
	CaseRunBottom CellCase = 3 // solid bottom half
	CaseCornerTR  CellCase = 4
	CasePinchTRBL CellCase = 5
	CaseRunRight  CellCase = 6
	CaseMissingTL CellCase = 7
	CaseCornerTL  CellCase = 8
	CaseRunLeft   CellCase = 9
	CasePinchTLBR CellCase = 10
	CaseMissingTR CellCase = 11
	CaseRunTop    CellCase = 12
	CaseMissingBR CellCase = 13
	CaseMissingBL CellCase = 14
	CaseSolid     CellCase = 15
)

const caseCount = 16

// Kind groups the 16 cases the way the passes handle them.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindCorner
	KindRun
	KindPinch
	KindThreeQuarter
	KindSolid
)

// Kind returns the group c belongs to.
func (c CellCase) Kind() Kind {
	switch c {
	case CaseEmpty:
		return KindEmpty
	case CaseCornerBL, CaseCornerBR, CaseCornerTR, CaseCornerTL:
		return KindCorner
	case CaseRunBottom, CaseRunRight, CaseRunLeft, CaseRunTop:
		return KindRun
	case CasePinchTRBL, CasePinchTLBR:
		return KindPinch
	case CaseMissingTL, CaseMissingTR, CaseMissingBR, CaseMissingBL:
		return KindThreeQuarter
	default:
		return KindSolid
	}
}

// CellGrid is the classifier output: one case per cell plus the visited
// mask consumed by the nav pass. Visited cells carry no border geometry.
type CellGrid struct {
	W, H    int
	cases   []CellCase
	visited []bool
}

func newCellGrid(w, h int) *CellGrid {
	return &CellGrid{
		W:       w,
		H:       h,
		cases:   make([]CellCase, w*h),
		visited: make([]bool, w*h),
	}
}

func (c *CellGrid) in(i, j int) bool {
	return i >= 0 && j >= 0 && i < c.W && j < c.H
}

// Case returns the case of cell (i, j); cells outside the grid are empty.
func (c *CellGrid) Case(i, j int) CellCase {
	if !c.in(i, j) {
		return CaseEmpty
	}
	return c.cases[j*c.W+i]
}

// Visited reports whether cell (i, j) is free of border geometry.
// Cells outside the grid count as visited.
func (c *CellGrid) Visited(i, j int) bool {
	if !c.in(i, j) {
		return true
	}
	return c.visited[j*c.W+i]
}

func (c *CellGrid) markVisited(i, j int) {
	c.visited[j*c.W+i] = true
}

// Count returns how many cells fall into kind k.
func (c *CellGrid) Count(k Kind) int {
	n := 0
	for _, cs := range c.cases {
		if cs.Kind() == k {
			n++
		}
	}
	return n
}

// cellCase samples the four corners of cell (i, j).
func cellCase(g *OccupancyGrid, i, j int) CellCase {
	var m CellCase
	if g.At(i, j) {
		m |= 8
	}
	if g.At(i+1, j) {
		m |= 4
	}
	if g.At(i+1, j+1) {
		m |= 2
	}
	if g.At(i, j+1) {
		m |= 1
	}
	return m
}

// cellPoints are the 8 named control points of one cell.
type cellPoints struct {
	tl, tr, br, bl           mgl32.Vec3
	top, right, bottom, left mgl32.Vec3
}

func pointsOf(i, j int) cellPoints {
	x, z := float32(i), float32(j)
	return cellPoints{
		tl:     mgl32.Vec3{x, 0, z},
		tr:     mgl32.Vec3{x + 1, 0, z},
		br:     mgl32.Vec3{x + 1, 0, z + 1},
		bl:     mgl32.Vec3{x, 0, z + 1},
		top:    mgl32.Vec3{x + 0.5, 0, z},
		right:  mgl32.Vec3{x + 1, 0, z + 0.5},
		bottom: mgl32.Vec3{x + 0.5, 0, z + 1},
		left:   mgl32.Vec3{x, 0, z + 0.5},
	}
}

type emitter struct {
	cells  *CellGrid
	main   *TriangleLayer
	border *BorderLayer
}

type emitFunc func(e *emitter, i, j int, p cellPoints)

// caseTable maps every mask value to its per-cell emission. Runs and solid
// cells emit nothing here; the run and block passes pick them up.
var caseTable = [caseCount]emitFunc{
	CaseEmpty:     emitEmpty,
	CaseCornerBL:  func(e *emitter, _, _ int, p cellPoints) { e.cornerBL(p, TagCornerBL) },
	CaseCornerBR:  func(e *emitter, _, _ int, p cellPoints) { e.cornerBR(p, TagCornerBR) },
	CaseRunBottom: emitDeferred,
	CaseCornerTR:  func(e *emitter, _, _ int, p cellPoints) { e.cornerTR(p, TagCornerTR) },
	CasePinchTRBL: func(e *emitter, _, _ int, p cellPoints) {
		e.cornerTR(p, TagPinchTRBL)
		e.cornerBL(p, TagPinchTRBL)
	},
	CaseRunRight: emitDeferred,
	CaseMissingTL: func(e *emitter, _, _ int, p cellPoints) {
		e.threeQuarter(p.tr, p.br, p.bl, p.top, p.left, TagCornerBR)
		e.border.AddSegment(p.left, p.top)
	},
	CaseCornerTL: func(e *emitter, _, _ int, p cellPoints) { e.cornerTL(p, TagCornerTL) },
	CaseRunLeft:  emitDeferred,
	CasePinchTLBR: func(e *emitter, _, _ int, p cellPoints) {
		e.cornerTL(p, TagPinchTLBR)
		e.cornerBR(p, TagPinchTLBR)
	},
	CaseMissingTR: func(e *emitter, _, _ int, p cellPoints) {
		e.threeQuarter(p.tl, p.bl, p.br, p.top, p.right, TagCornerBL)
		e.border.AddSegment(p.top, p.right)
	},
	CaseRunTop: emitDeferred,
	CaseMissingBR: func(e *emitter, _, _ int, p cellPoints) {
		e.threeQuarter(p.tr, p.tl, p.bl, p.right, p.bottom, TagCornerTL)
		e.border.AddSegment(p.right, p.bottom)
	},
	CaseMissingBL: func(e *emitter, _, _ int, p cellPoints) {
		e.threeQuarter(p.tl, p.tr, p.br, p.left, p.bottom, TagCornerTR)
		e.border.AddSegment(p.bottom, p.left)
	},
	CaseSolid: emitDeferred,
}

func emitEmpty(e *emitter, i, j int, _ cellPoints) {
	e.cells.markVisited(i, j)
}

func emitDeferred(*emitter, int, int, cellPoints) {}

func (e *emitter) cornerTL(p cellPoints, tag Tag) {
	e.main.AddFloor(p.tl, p.top, p.left, tag)
	e.border.AddSegment(p.top, p.left)
}

func (e *emitter) cornerTR(p cellPoints, tag Tag) {
	e.main.AddFloor(p.tr, p.right, p.top, tag)
	e.border.AddSegment(p.right, p.top)
}

func (e *emitter) cornerBR(p cellPoints, tag Tag) {
	e.main.AddFloor(p.br, p.bottom, p.right, tag)
	e.border.AddSegment(p.bottom, p.right)
}

func (e *emitter) cornerBL(p cellPoints, tag Tag) {
	e.main.AddFloor(p.bl, p.left, p.bottom, tag)
	e.border.AddSegment(p.left, p.bottom)
}

// threeQuarter fills the pentagon midA-a-opp-b-midB, where a and b are the
// solid corners next to the empty one and midA, midB the midpoints cut
// towards it.
func (e *emitter) threeQuarter(a, opp, b, midA, midB mgl32.Vec3, corner Tag) {
	e.main.AddFloor(a, opp, b, corner)
	e.main.AddFloor(midA, a, b, TagInterior)
	e.main.AddFloor(midA, b, midB, TagInterior)
}

// classify runs the case table over every cell of g.
func classify(g *OccupancyGrid, main *TriangleLayer, border *BorderLayer) *CellGrid {
	cells := newCellGrid(g.Width()-1, g.Height()-1)
	e := &emitter{cells: cells, main: main, border: border}
	for j := 0; j < cells.H; j++ {
		for i := 0; i < cells.W; i++ {
			c := cellCase(g, i, j)
			cells.cases[j*cells.W+i] = c
			caseTable[c](e, i, j, pointsOf(i, j))
		}
	}
	return cells
}
