package meshfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// binWriter is a sequential little-endian writer. The first error sticks
// and turns every later write into a no-op.
type binWriter struct {
	w   io.Writer
	buf [4]byte
	err error
}

func (b *binWriter) u32(v uint32) {
	if b.err != nil {
		return
	}
	binary.LittleEndian.PutUint32(b.buf[:], v)
	_, b.err = b.w.Write(b.buf[:])
}

func (b *binWriter) f32(v float32) {
	b.u32(math.Float32bits(v))
}

func (b *binWriter) vec3(v mgl32.Vec3) {
	b.f32(v[0])
	b.f32(v[1])
	b.f32(v[2])
}

// WriteMesh serializes m in the .3df layout.
func WriteMesh(w io.Writer, m *Mesh) error {
	b := &binWriter{w: w}
	b.u32(uint32(len(m.Vertices)))
	for _, v := range m.Vertices {
		b.vec3(v.Pos)
		b.vec3(v.Normal)
		b.f32(v.UV[0])
		b.f32(v.UV[1])
	}
	b.u32(uint32(len(m.Indices)))
	for _, idx := range m.Indices {
		b.u32(idx)
	}
	b.vec3(m.Min)
	b.vec3(m.Max)
	b.f32(m.Radius)
	return b.err
}

// WriteNavMask serializes n in the .nvm layout.
func WriteNavMask(w io.Writer, n *NavMaskFile) error {
	b := &binWriter{w: w}
	b.u32(n.Width)
	b.u32(n.Height)
	b.f32(n.CellWidth)
	b.f32(n.CellHeight)
	for _, c := range n.Cells {
		b.u32(c.I)
		b.u32(c.J)
		for _, p := range c.Corners {
			b.vec3(p)
		}
		var occ uint32
		if c.Occupied {
			occ = 1
		}
		b.u32(occ)
	}
	return b.err
}

// WriteLevel writes the four artifacts of lvl under levelsDir/name,
// creating directories as needed, and returns their paths.
func WriteLevel(levelsDir, name string, lvl *Level) (Paths, error) {
	p := LevelPaths(levelsDir, name)
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return p, fmt.Errorf("meshfile: create %s: %w", p.Dir, err)
	}

	files := []struct {
		path  string
		write func(io.Writer) error
	}{
		{p.Render, func(w io.Writer) error { return WriteMesh(w, lvl.Render) }},
		{p.Collision, func(w io.Writer) error { return WriteMesh(w, lvl.Collision) }},
		{p.Nav, func(w io.Writer) error { return WriteMesh(w, lvl.Nav) }},
		{p.NavMask, func(w io.Writer) error { return WriteNavMask(w, lvl.NavMask) }},
	}
	for _, f := range files {
		if err := writeFile(f.path, f.write); err != nil {
			return p, err
		}
	}
	return p, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("meshfile: create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return fmt.Errorf("meshfile: write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("meshfile: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("meshfile: close %s: %w", path, err)
	}
	return nil
}
