package levelgen

import "github.com/go-gl/mathgl/mgl32"

// Extrude turns each border segment into a vertical wall quad hanging
// depth units below the floor. The render and collision layers receive
// identical triangles; either may be nil. Walls face away from solid space.
func Extrude(border *BorderLayer, depth float32, render, collision *TriangleLayer) {
	down := mgl32.Vec3{0, -depth, 0}
	for _, s := range border.Segments() {
		p, q := s.A, s.B
		pd, qd := p.Add(down), q.Add(down)
		for _, l := range []*TriangleLayer{render, collision} {
			if l == nil {
				continue
			}
			l.Add(p, q, qd, TagBorder)
			l.Add(p, qd, pd, TagBorder)
		}
	}
}
