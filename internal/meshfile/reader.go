package meshfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrCorrupt is returned when a file is truncated or declares absurd counts.
var ErrCorrupt = errors.New("meshfile: corrupt file")

// maxCount bounds element counts read from disk.
const maxCount = 1 << 26

// maxPrealloc caps the capacity reserved from a header count; larger
// slices grow as records actually arrive.
const maxPrealloc = 4096

type binReader struct {
	r   io.Reader
	buf [4]byte
	err error
}

func (b *binReader) u32() uint32 {
	if b.err != nil {
		return 0
	}
	if _, err := io.ReadFull(b.r, b.buf[:]); err != nil {
		b.err = fmt.Errorf("%w: %v", ErrCorrupt, err)
		return 0
	}
	return binary.LittleEndian.Uint32(b.buf[:])
}

func (b *binReader) f32() float32 {
	return math.Float32frombits(b.u32())
}

func (b *binReader) vec3() mgl32.Vec3 {
	return mgl32.Vec3{b.f32(), b.f32(), b.f32()}
}

func (b *binReader) count(what string) int {
	n := b.u32()
	if b.err == nil && n > maxCount {
		b.err = fmt.Errorf("%w: %d %s", ErrCorrupt, n, what)
		return 0
	}
	return int(n)
}

// ReadMesh parses a .3df stream.
func ReadMesh(r io.Reader) (*Mesh, error) {
	b := &binReader{r: r}
	m := &Mesh{}

	nv := b.count("vertices")
	m.Vertices = make([]Vertex, 0, min(nv, maxPrealloc))
	for k := 0; k < nv && b.err == nil; k++ {
		var v Vertex
		v.Pos = b.vec3()
		v.Normal = b.vec3()
		v.UV = mgl32.Vec2{b.f32(), b.f32()}
		m.Vertices = append(m.Vertices, v)
	}

	ni := b.count("indices")
	m.Indices = make([]uint32, 0, min(ni, maxPrealloc))
	for k := 0; k < ni && b.err == nil; k++ {
		m.Indices = append(m.Indices, b.u32())
	}

	m.Min = b.vec3()
	m.Max = b.vec3()
	m.Radius = b.f32()
	if b.err != nil {
		return nil, b.err
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return nil, fmt.Errorf("%w: index %d out of %d vertices", ErrCorrupt, idx, len(m.Vertices))
		}
	}
	return m, nil
}

// ReadNavMask parses a .nvm stream.
func ReadNavMask(r io.Reader) (*NavMaskFile, error) {
	b := &binReader{r: r}
	n := &NavMaskFile{}
	n.Width = b.u32()
	n.Height = b.u32()
	n.CellWidth = b.f32()
	n.CellHeight = b.f32()
	if b.err != nil {
		return nil, b.err
	}
	total := uint64(n.Width) * uint64(n.Height)
	if total > maxCount {
		return nil, fmt.Errorf("%w: %dx%d nav mask", ErrCorrupt, n.Width, n.Height)
	}

	n.Cells = make([]NavCell, 0, min(total, maxPrealloc))
	for k := uint64(0); k < total && b.err == nil; k++ {
		var c NavCell
		c.I = b.u32()
		c.J = b.u32()
		for p := range c.Corners {
			c.Corners[p] = b.vec3()
		}
		c.Occupied = b.u32() != 0
		n.Cells = append(n.Cells, c)
	}
	if b.err != nil {
		return nil, b.err
	}
	return n, nil
}

// ReadMeshFile opens and parses a .3df file.
func ReadMeshFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshfile: open %s: %w", path, err)
	}
	defer f.Close()
	m, err := ReadMesh(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("meshfile: read %s: %w", path, err)
	}
	return m, nil
}

// ReadNavMaskFile opens and parses a .nvm file.
func ReadNavMaskFile(path string) (*NavMaskFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshfile: open %s: %w", path, err)
	}
	defer f.Close()
	n, err := ReadNavMask(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("meshfile: read %s: %w", path, err)
	}
	return n, nil
}
