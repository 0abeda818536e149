package levelgen

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrOddSegmentPoints is returned when a flat point list cannot be split
// into segments.
var ErrOddSegmentPoints = errors.New("levelgen: odd number of border points")

// degenerateArea is the area below which a triangle is dropped.
const degenerateArea = 1e-6

// Tag describes where a triangle came from. It is inspection metadata only.
type Tag uint8

const (
	TagCornerTL Tag = iota
	TagCornerTR
	TagCornerBR
	TagCornerBL
	TagRunTop
	TagRunBottom
	TagRunLeft
	TagRunRight
	TagPinchTLBR
	TagPinchTRBL
	TagInterior
	TagBorder
	// TagExternal marks rectangles from the block pass, outside the
	// per-cell case table.
	TagExternal
)

var tagNames = [...]string{
	TagCornerTL:  "corner-tl",
	TagCornerTR:  "corner-tr",
	TagCornerBR:  "corner-br",
	TagCornerBL:  "corner-bl",
	TagRunTop:    "run-top",
	TagRunBottom: "run-bottom",
	TagRunLeft:   "run-left",
	TagRunRight:  "run-right",
	TagPinchTLBR: "pinch-tl-br",
	TagPinchTRBL: "pinch-tr-bl",
	TagInterior:  "interior",
	TagBorder:    "border",
	TagExternal:  "external",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// GridTriangle is one emitted triangle. Vertices are not shared.
type GridTriangle struct {
	P   [3]mgl32.Vec3
	Tag Tag
}

// Normal returns the unit face normal, or the zero vector for a
// degenerate triangle.
func (t GridTriangle) Normal() mgl32.Vec3 {
	n := t.P[1].Sub(t.P[0]).Cross(t.P[2].Sub(t.P[0]))
	if n.Len() < 1e-12 {
		return mgl32.Vec3{}
	}
	return n.Normalize()
}

// Area returns the triangle area.
func (t GridTriangle) Area() float32 {
	return 0.5 * t.P[1].Sub(t.P[0]).Cross(t.P[2].Sub(t.P[0])).Len()
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Extend grows b to contain p.
func (b AABB) Extend(p mgl32.Vec3) AABB {
	for k := 0; k < 3; k++ {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
	return b
}

// Union returns the box containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return b.Extend(o.Min).Extend(o.Max)
}

// Center returns the box midpoint.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extent per axis.
func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// TriangleLayer is an append-only triangle container.
type TriangleLayer struct {
	name    string
	tris    []GridTriangle
	bounds  AABB
	final   bool
	dropped int
	log     *zap.Logger
}

// NewTriangleLayer creates an empty layer. A nil logger discards output.
func NewTriangleLayer(name string, log *zap.Logger) *TriangleLayer {
	if log == nil {
		log = zap.NewNop()
	}
	return &TriangleLayer{name: name, log: log}
}

// Name returns the layer name.
func (l *TriangleLayer) Name() string { return l.name }

// Add appends a triangle. Degenerate triangles are dropped and logged;
// Add reports whether the triangle was kept.
func (l *TriangleLayer) Add(a, b, c mgl32.Vec3, tag Tag) bool {
	t := GridTriangle{P: [3]mgl32.Vec3{a, b, c}, Tag: tag}
	if t.Area() < degenerateArea {
		l.dropped++
		l.log.Debug("dropped degenerate triangle",
			zap.String("layer", l.name),
			zap.Stringer("tag", tag),
			zap.Float32s("a", a[:]),
			zap.Float32s("b", b[:]),
			zap.Float32s("c", c[:]))
		return false
	}
	l.tris = append(l.tris, t)
	l.final = false
	return true
}

// AddFloor appends a horizontal triangle, reordering it so the face normal
// points up (+Y).
func (l *TriangleLayer) AddFloor(a, b, c mgl32.Vec3, tag Tag) bool {
	if b.Sub(a).Cross(c.Sub(a)).Y() < 0 {
		b, c = c, b
	}
	return l.Add(a, b, c, tag)
}

// AddFloorQuad appends the quad a-b-c-d as two upward-facing triangles.
// The corners must be given in order around the quad.
func (l *TriangleLayer) AddFloorQuad(a, b, c, d mgl32.Vec3, tag Tag) {
	l.AddFloor(a, b, c, tag)
	l.AddFloor(a, c, d, tag)
}

// AddLayer appends every triangle of o.
func (l *TriangleLayer) AddLayer(o *TriangleLayer) {
	for _, t := range o.tris {
		l.Add(t.P[0], t.P[1], t.P[2], t.Tag)
	}
}

// Triangles returns the stored triangles. The slice must not be modified.
func (l *TriangleLayer) Triangles() []GridTriangle { return l.tris }

// Len returns the number of stored triangles.
func (l *TriangleLayer) Len() int { return len(l.tris) }

// Dropped returns the number of degenerate triangles rejected so far.
func (l *TriangleLayer) Dropped() int { return l.dropped }

// CountTag returns how many stored triangles carry tag.
func (l *TriangleLayer) CountTag(tag Tag) int {
	n := 0
	for _, t := range l.tris {
		if t.Tag == tag {
			n++
		}
	}
	return n
}

// Finalize computes the exact bounding box of every stored vertex.
// An empty layer has a zero box.
func (l *TriangleLayer) Finalize() AABB {
	if len(l.tris) == 0 {
		l.bounds = AABB{}
		l.final = true
		return l.bounds
	}
	b := AABB{Min: l.tris[0].P[0], Max: l.tris[0].P[0]}
	for _, t := range l.tris {
		for _, p := range t.P {
			b = b.Extend(p)
		}
	}
	l.bounds = b
	l.final = true
	return b
}

// Bounds returns the box computed by the last Finalize. ok is false when
// the layer changed since, or was never finalized.
func (l *TriangleLayer) Bounds() (b AABB, ok bool) {
	return l.bounds, l.final
}

// Segment is one directed border edge. Solid space lies to the right of
// A→B in image orientation (x right, rows down).
type Segment struct {
	A, B mgl32.Vec3
}

// BorderLayer holds the border segments separating solid from empty space.
type BorderLayer struct {
	segs    []Segment
	dropped int
	log     *zap.Logger
}

// NewBorderLayer creates an empty border layer.
func NewBorderLayer(log *zap.Logger) *BorderLayer {
	if log == nil {
		log = zap.NewNop()
	}
	return &BorderLayer{log: log}
}

// AddSegment appends a→b. Zero-length segments are dropped.
func (l *BorderLayer) AddSegment(a, b mgl32.Vec3) bool {
	if a.ApproxEqual(b) {
		l.dropped++
		l.log.Debug("dropped zero-length border segment", zap.Float32s("at", a[:]))
		return false
	}
	l.segs = append(l.segs, Segment{A: a, B: b})
	return true
}

// AddPoints appends consecutive point pairs as segments. The whole call is
// rejected when the count is odd.
func (l *BorderLayer) AddPoints(pts ...mgl32.Vec3) error {
	if len(pts)%2 != 0 {
		return fmt.Errorf("%w: got %d", ErrOddSegmentPoints, len(pts))
	}
	for i := 0; i < len(pts); i += 2 {
		l.AddSegment(pts[i], pts[i+1])
	}
	return nil
}

// Segments returns the stored segments. The slice must not be modified.
func (l *BorderLayer) Segments() []Segment { return l.segs }

// Len returns the number of segments.
func (l *BorderLayer) Len() int { return len(l.segs) }

// Closed reports whether the segments form closed loops: every endpoint is
// left exactly as often as it is entered.
func (l *BorderLayer) Closed() bool {
	balance := make(map[mgl32.Vec3]int, len(l.segs))
	for _, s := range l.segs {
		balance[s.A]++
		balance[s.B]--
	}
	for _, n := range balance {
		if n != 0 {
			return false
		}
	}
	return true
}
