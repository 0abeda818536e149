package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"silhouette/internal/meshfile"
)

func main() {
	showMap := flag.Bool("map", false, "Print nav masks as ASCII")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: meshinspect [-map] file.3df|file.nvm ...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	status := 0
	for _, path := range flag.Args() {
		var err error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".3df":
			err = inspectMesh(path)
		case ".nvm":
			err = inspectNavMask(path, *showMap)
		default:
			err = fmt.Errorf("unknown extension")
		}
		if err != nil {
			fmt.Printf("%s: error: %v\n", path, err)
			status = 1
		}
	}
	os.Exit(status)
}

func inspectMesh(path string) error {
	m, err := meshfile.ReadMeshFile(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", path)
	fmt.Printf("  Vertices: %d, Triangles: %d\n", len(m.Vertices), m.TriangleCount())
	fmt.Printf("  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n",
		m.Min[0], m.Max[0], m.Min[1], m.Max[1], m.Min[2], m.Max[2])
	size := m.Max.Sub(m.Min)
	fmt.Printf("  Size: %.3f x %.3f x %.3f, Radius: %.3f\n", size[0], size[1], size[2], m.Radius)

	// Surface area by dominant normal axis
	areaByDir := map[string]float32{}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a := m.Vertices[m.Indices[t]].Pos
		b := m.Vertices[m.Indices[t+1]].Pos
		c := m.Vertices[m.Indices[t+2]].Pos
		n := b.Sub(a).Cross(c.Sub(a))
		areaByDir[direction(n)] += n.Len() / 2
	}
	fmt.Println("  --- Surface area by direction ---")
	for _, d := range []string{"+Y(floor)", "-Y", "+X", "-X", "+Z", "-Z"} {
		if areaByDir[d] > 0 {
			fmt.Printf("  %s: %.3f sq units\n", d, areaByDir[d])
		}
	}
	return nil
}

func direction(n mgl32.Vec3) string {
	ax, ay, az := abs(n[0]), abs(n[1]), abs(n[2])
	switch {
	case ay >= ax && ay >= az:
		if n[1] > 0 {
			return "+Y(floor)"
		}
		return "-Y"
	case ax >= az:
		if n[0] > 0 {
			return "+X"
		}
		return "-X"
	default:
		if n[2] > 0 {
			return "+Z"
		}
		return "-Z"
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func inspectNavMask(path string, showMap bool) error {
	n, err := meshfile.ReadNavMaskFile(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", path)
	fmt.Printf("  Mask: %d x %d, Cell: %.3f x %.3f\n", n.Width, n.Height, n.CellWidth, n.CellHeight)
	fmt.Printf("  Navigable: %d/%d\n", n.Occupied(), len(n.Cells))

	first := true
	var lo, hi mgl32.Vec3
	for _, c := range n.Cells {
		if !c.Occupied {
			continue
		}
		for _, p := range c.Corners {
			if first {
				lo, hi, first = p, p, false
				continue
			}
			for k := 0; k < 3; k++ {
				lo[k] = min(lo[k], p[k])
				hi[k] = max(hi[k], p[k])
			}
		}
	}
	if !first {
		fmt.Printf("  Navigable BBox: X[%.3f, %.3f] Z[%.3f, %.3f]\n", lo[0], hi[0], lo[2], hi[2])
	}

	if showMap {
		var sb strings.Builder
		for j := uint32(0); j < n.Height; j++ {
			sb.WriteString("  ")
			for i := uint32(0); i < n.Width; i++ {
				if n.Cells[j*n.Width+i].Occupied {
					sb.WriteByte('#')
				} else {
					sb.WriteByte('.')
				}
			}
			sb.WriteByte('\n')
		}
		fmt.Print(sb.String())
	}
	return nil
}
