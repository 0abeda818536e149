// Package preview draws a compiled level as an image for quick review.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"silhouette/internal/levelgen"
)

var (
	colorEmpty  = color.NRGBA{16, 16, 20, 255}
	colorFloor  = color.NRGBA{120, 120, 120, 255}
	colorNav    = color.NRGBA{70, 170, 90, 255}
	colorBorder = color.NRGBA{220, 40, 40, 255}
)

// Render paints one source pixel per occupied grid sample, tints samples
// inside navigable cells, upscales by scale and traces the border on top.
func Render(occ *levelgen.OccupancyGrid, border *levelgen.BorderLayer, mask *levelgen.NavMask, scale int) *image.NRGBA {
	if scale < 1 {
		scale = 1
	}
	w, h := occ.Width()-2, occ.Height()-2
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	base := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := colorEmpty
			if occ.At(x+1, y+1) {
				c = colorFloor
				if navigable(mask, x+1, y+1) {
					c = colorNav
				}
			}
			base.SetNRGBA(x, y, c)
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), base, base.Bounds(), draw.Src, nil)

	if border != nil {
		for _, s := range border.Segments() {
			line(dst, toImage(s.A.X(), scale), toImage(s.A.Z(), scale),
				toImage(s.B.X(), scale), toImage(s.B.Z(), scale), colorBorder)
		}
	}
	return dst
}

// navigable reports whether the world point (i, 0, j) lies in a true cell.
func navigable(mask *levelgen.NavMask, i, j int) bool {
	if mask == nil || mask.CellSize <= 0 {
		return false
	}
	ci := int(math.Floor(float64(float32(i) / mask.CellSize)))
	cj := int(math.Floor(float64(float32(j) / mask.CellSize)))
	return mask.At(ci, cj)
}

// toImage maps a world coordinate to an upscaled image coordinate. Pixel p
// spans world [p+0.5, p+1.5].
func toImage(v float32, scale int) float64 {
	return (float64(v) - 0.5) * float64(scale)
}

func line(img *image.NRGBA, x0, y0, x1, y1 float64, c color.NRGBA) {
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0)))) + 1
	b := img.Bounds()
	for k := 0; k <= steps; k++ {
		t := float64(k) / float64(steps)
		x := int(math.Floor(x0 + (x1-x0)*t))
		y := int(math.Floor(y0 + (y1-y0)*t))
		if x == b.Max.X {
			x--
		}
		if y == b.Max.Y {
			y--
		}
		if image.Pt(x, y).In(b) {
			img.SetNRGBA(x, y, c)
		}
	}
}

// Write encodes img as lossless WebP at path.
func Write(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("preview: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("preview: close %s: %w", path, err)
	}
	return nil
}
