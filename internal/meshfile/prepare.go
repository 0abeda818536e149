package meshfile

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"silhouette/internal/levelgen"
)

// ErrInvalidScale is returned for a non-positive or non-finite world scale.
var ErrInvalidScale = errors.New("meshfile: invalid world scale")

// Level holds the transformed meshes of one compiled level.
type Level struct {
	Render    *Mesh
	Collision *Mesh
	Nav       *Mesh
	NavMask   *NavMaskFile

	// Center is the pre-transform point moved to the origin.
	Center mgl32.Vec3
	Scale  float32
}

type transform struct {
	center mgl32.Vec3
	scale  float32
	uvMin  mgl32.Vec3
	uvSize mgl32.Vec3
}

func (t transform) apply(p mgl32.Vec3) mgl32.Vec3 {
	return p.Sub(t.center).Mul(t.scale)
}

func (t transform) uv(p mgl32.Vec3) mgl32.Vec2 {
	var uv mgl32.Vec2
	if t.uvSize.X() > 0 {
		uv[0] = (p.X() - t.uvMin.X()) / t.uvSize.X()
	}
	if t.uvSize.Z() > 0 {
		uv[1] = (p.Z() - t.uvMin.Z()) / t.uvSize.Z()
	}
	return uv
}

// Prepare recenters the render, nav and collision layers on the center of
// their combined bounding box and applies one uniform scale to all of them
// and to the nav mask, so the artifacts stay aligned.
func Prepare(render, nav, collision *levelgen.TriangleLayer, mask *levelgen.NavMask, scale float32) (*Level, error) {
	if !(scale > 0) || math.IsInf(float64(scale), 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidScale, scale)
	}

	var bounds levelgen.AABB
	have := false
	for _, l := range []*levelgen.TriangleLayer{render, nav, collision} {
		if l.Len() == 0 {
			continue
		}
		b, ok := l.Bounds()
		if !ok {
			b = l.Finalize()
		}
		if !have {
			bounds, have = b, true
		} else {
			bounds = bounds.Union(b)
		}
	}

	t := transform{
		center: bounds.Center(),
		scale:  scale,
		uvMin:  bounds.Min,
		uvSize: bounds.Size(),
	}
	return &Level{
		Render:    buildMesh(render, t),
		Collision: buildMesh(collision, t),
		Nav:       buildMesh(nav, t),
		NavMask:   buildNavMask(mask, t),
		Center:    t.center,
		Scale:     scale,
	}, nil
}

func buildMesh(l *levelgen.TriangleLayer, t transform) *Mesh {
	tris := l.Triangles()
	m := &Mesh{
		Vertices: make([]Vertex, 0, len(tris)*3),
		Indices:  make([]uint32, 0, len(tris)*3),
	}
	for _, tri := range tris {
		n := tri.Normal()
		for _, p := range tri.P {
			m.Indices = append(m.Indices, uint32(len(m.Vertices)))
			m.Vertices = append(m.Vertices, Vertex{Pos: t.apply(p), Normal: n, UV: t.uv(p)})
		}
	}
	m.computeBounds()
	return m
}

// computeBounds sets the exact AABB and the bounding-sphere radius around
// its center. An empty mesh keeps zero bounds.
func (m *Mesh) computeBounds() {
	if len(m.Vertices) == 0 {
		m.Min, m.Max, m.Radius = mgl32.Vec3{}, mgl32.Vec3{}, 0
		return
	}
	b := levelgen.AABB{Min: m.Vertices[0].Pos, Max: m.Vertices[0].Pos}
	for _, v := range m.Vertices {
		b = b.Extend(v.Pos)
	}
	mid := b.Center()
	var r float32
	for _, v := range m.Vertices {
		if d := v.Pos.Sub(mid).Len(); d > r {
			r = d
		}
	}
	m.Min, m.Max, m.Radius = b.Min, b.Max, r
}

func buildNavMask(mask *levelgen.NavMask, t transform) *NavMaskFile {
	out := &NavMaskFile{
		Width:      uint32(mask.Width),
		Height:     uint32(mask.Height),
		CellWidth:  mask.CellSize * t.scale,
		CellHeight: mask.CellSize * t.scale,
		Cells:      make([]NavCell, 0, mask.Width*mask.Height),
	}
	s := mask.CellSize
	for j := 0; j < mask.Height; j++ {
		for i := 0; i < mask.Width; i++ {
			x0, z0 := float32(i)*s, float32(j)*s
			out.Cells = append(out.Cells, NavCell{
				I: uint32(i),
				J: uint32(j),
				Corners: [4]mgl32.Vec3{
					t.apply(mgl32.Vec3{x0, 0, z0}),
					t.apply(mgl32.Vec3{x0 + s, 0, z0}),
					t.apply(mgl32.Vec3{x0 + s, 0, z0 + s}),
					t.apply(mgl32.Vec3{x0, 0, z0 + s}),
				},
				Occupied: mask.At(i, j),
			})
		}
	}
	return out
}
