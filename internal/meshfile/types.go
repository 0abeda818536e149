// Package meshfile centers, scales and serializes compiled levels.
//
// Every artifact is little-endian without a magic number or version:
//
//	.3df  mesh: vertices (pos, normal, uv), uint32 indices, AABB, radius
//	.nvm  nav mask: size, cell size, one record per cell with world corners
package meshfile

import (
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one serialized mesh vertex.
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
	UV     mgl32.Vec2
}

// Mesh is a render, collision or nav mesh ready to be written.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Min, Max mgl32.Vec3
	Radius   float32
}

// TriangleCount returns len(Indices)/3.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// NavCell is one nav mask record. Corners run (i,j), (i+1,j), (i+1,j+1),
// (i,j+1) in cell space.
type NavCell struct {
	I, J     uint32
	Corners  [4]mgl32.Vec3
	Occupied bool
}

// NavMaskFile is the serialized nav mask.
type NavMaskFile struct {
	Width, Height         uint32
	CellWidth, CellHeight float32
	Cells                 []NavCell
}

// Occupied counts navigable cells.
func (n *NavMaskFile) Occupied() int {
	c := 0
	for _, cell := range n.Cells {
		if cell.Occupied {
			c++
		}
	}
	return c
}

// Paths lists the artifacts of one level.
type Paths struct {
	Dir       string
	Render    string
	Collision string
	Nav       string
	NavMask   string
	Preview   string
}

// LevelPaths returns the artifact paths of level name under levelsDir.
func LevelPaths(levelsDir, name string) Paths {
	dir := filepath.Join(levelsDir, name)
	return Paths{
		Dir:       dir,
		Render:    filepath.Join(dir, name+".3df"),
		Collision: filepath.Join(dir, name+"_col.3df"),
		Nav:       filepath.Join(dir, name+"_nav.3df"),
		NavMask:   filepath.Join(dir, name+"_nav_mask.nvm"),
		Preview:   filepath.Join(dir, name+"_preview.webp"),
	}
}
