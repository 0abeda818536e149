// Package bitmap decodes level silhouettes into tightly packed RGB buffers.
package bitmap

import (
	"image"
	"image/color"
)

// Image is a packed 8-bit RGB bitmap. It satisfies levelgen.Source.
type Image struct {
	w, h int
	pix  []byte
}

// New wraps pix as a w×h RGB bitmap. pix is not copied.
func New(w, h int, pix []byte) *Image {
	return &Image{w: w, h: h, pix: pix}
}

// NewBlank returns an all-black w×h bitmap.
func NewBlank(w, h int) *Image {
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	return &Image{w: w, h: h, pix: make([]byte, w*h*3)}
}

func (m *Image) Width() int         { return m.w }
func (m *Image) Height() int        { return m.h }
func (m *Image) BytesPerPixel() int { return 3 }
func (m *Image) Pix() []byte        { return m.pix }

func (m *Image) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return 0, false
	}
	return (y*m.w + x) * 3, true
}

// RGB returns the color at (x,y); out-of-range pixels read as black.
func (m *Image) RGB(x, y int) (r, g, b uint8) {
	o, ok := m.offset(x, y)
	if !ok {
		return 0, 0, 0
	}
	return m.pix[o], m.pix[o+1], m.pix[o+2]
}

// Set writes one pixel. Out-of-range writes are ignored.
func (m *Image) Set(x, y int, r, g, b uint8) {
	o, ok := m.offset(x, y)
	if !ok {
		return
	}
	m.pix[o], m.pix[o+1], m.pix[o+2] = r, g, b
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	pix := make([]byte, len(m.pix))
	copy(pix, m.pix)
	return &Image{w: m.w, h: m.h, pix: pix}
}

// FromImage converts any decoded image to packed RGB. Fully transparent
// pixels become black so they never count as floor.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	dst := NewBlank(b.Dx(), b.Dy())

	switch s := src.(type) {
	case *image.NRGBA:
		for y := 0; y < dst.h; y++ {
			for x := 0; x < dst.w; x++ {
				i := s.PixOffset(b.Min.X+x, b.Min.Y+y)
				if s.Pix[i+3] == 0 {
					continue
				}
				dst.Set(x, y, s.Pix[i], s.Pix[i+1], s.Pix[i+2])
			}
		}
	default:
		for y := 0; y < dst.h; y++ {
			for x := 0; x < dst.w; x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				if c.A == 0 {
					continue
				}
				dst.Set(x, y, c.R, c.G, c.B)
			}
		}
	}
	return dst
}

// ToNRGBA expands m to an opaque NRGBA image.
func (m *Image) ToNRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, m.w, m.h))
	for k := 0; k < m.w*m.h; k++ {
		dst.Pix[k*4] = m.pix[k*3]
		dst.Pix[k*4+1] = m.pix[k*3+1]
		dst.Pix[k*4+2] = m.pix[k*3+2]
		dst.Pix[k*4+3] = 255
	}
	return dst
}
