package raster

import (
	"math"

	"silhouette/internal/levelgen"
)

// edgeTolerance admits samples lying on a shared edge or vertex.
const edgeTolerance = 1e-3

// FillTriangle projects t onto the XZ plane and increments every sample it
// covers. Degenerate projections are skipped.
func FillTriangle(b *Buffer, t levelgen.GridTriangle) {
	x0, y0 := float64(t.P[0].X()), float64(t.P[0].Z())
	x1, y1 := float64(t.P[1].X()), float64(t.P[1].Z())
	x2, y2 := float64(t.P[2].X()), float64(t.P[2].Z())

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))
	if minX < 0 {
		minX = 0
	}
	if maxX >= b.Width {
		maxX = b.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= b.Height {
		maxY = b.Height - 1
	}

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		row := sy * b.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -edgeTolerance || w1 < -edgeTolerance || w2 < -edgeTolerance {
				continue
			}
			if b.Hits[row+sx] < math.MaxUint16 {
				b.Hits[row+sx]++
			}
		}
	}
}
