// Package cleanup removes stray specks from silhouettes before compiling.
package cleanup

import (
	"silhouette/internal/bitmap"
	"silhouette/internal/levelgen"
)

// Islands labels the 8-connected occupied components of img. It returns
// the per-pixel label (-1 for empty) and the size of each component.
func Islands(img *bitmap.Image) (labels []int, sizes []int) {
	w, h := img.Width(), img.Height()
	pix := img.Pix()

	occ := make([]bool, w*h)
	for k := range occ {
		occ[k] = levelgen.PixelOccupied(pix[k*3 : k*3+3])
	}

	labels = make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}

	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
	queue := make([]int, 0, 1024)
	id := 0

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !occ[idx] || labels[idx] >= 0 {
				continue
			}

			queue = append(queue[:0], idx)
			labels[idx] = id
			size := 0
			for len(queue) > 0 {
				curr := queue[0]
				queue = queue[1:]
				size++

				cx, cy := curr%w, curr/w
				for d := 0; d < 8; d++ {
					nx, ny := cx+dx[d], cy+dy[d]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					ni := ny*w + nx
					if occ[ni] && labels[ni] < 0 {
						labels[ni] = id
						queue = append(queue, ni)
					}
				}
			}

			sizes = append(sizes, size)
			id++
		}
	}
	return labels, sizes
}

// RemoveSmallIslands blacks out every component with fewer than minPixels
// pixels. It returns a new image and the number of pixels cleared; img is
// returned unchanged when minPixels <= 1 or nothing qualifies.
func RemoveSmallIslands(img *bitmap.Image, minPixels int) (*bitmap.Image, int) {
	if minPixels <= 1 {
		return img, 0
	}
	labels, sizes := Islands(img)

	small := false
	for _, s := range sizes {
		if s < minPixels {
			small = true
			break
		}
	}
	if !small {
		return img, 0
	}

	out := img.Clone()
	w := img.Width()
	cleared := 0
	for idx, l := range labels {
		if l >= 0 && sizes[l] < minPixels {
			out.Set(idx%w, idx/w, 0, 0, 0)
			cleared++
		}
	}
	return out, cleared
}
