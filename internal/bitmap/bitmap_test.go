package bitmap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}
	return img
}

func TestFromImage_TransparentIsBlack(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 255})
	src.Pix[4], src.Pix[5], src.Pix[6], src.Pix[7] = 255, 255, 255, 0

	m := FromImage(src)
	r, g, b := m.RGB(0, 0)
	assert.Equal(t, [3]uint8{200, 100, 50}, [3]uint8{r, g, b})
	r, g, b = m.RGB(1, 0)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
}

func TestFromImage_OffsetBounds(t *testing.T) {
	src := image.NewGray(image.Rect(10, 20, 13, 22))
	src.SetGray(12, 21, color.Gray{Y: 255})

	m := FromImage(src)
	require.Equal(t, 3, m.Width())
	require.Equal(t, 2, m.Height())
	r, g, b := m.RGB(2, 1)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})
	r, _, _ = m.RGB(0, 0)
	assert.Zero(t, r)
}

func TestImage_SetOutOfRange(t *testing.T) {
	m := NewBlank(2, 2)
	m.Set(-1, 0, 1, 1, 1)
	m.Set(2, 0, 1, 1, 1)
	assert.Equal(t, make([]byte, 12), m.Pix())
	assert.Equal(t, 3, m.BytesPerPixel())

	c := m.Clone()
	c.Set(0, 0, 9, 9, 9)
	r, _, _ := m.RGB(0, 0)
	assert.Zero(t, r)
}

func TestDecode_Formats(t *testing.T) {
	src := checker(5, 4)

	var pngBuf, bmpBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, src))
	require.NoError(t, bmp.Encode(&bmpBuf, src))

	for ext, buf := range map[string]*bytes.Buffer{".PNG": &pngBuf, ".bmp": &bmpBuf} {
		m, err := Decode(buf, ext)
		require.NoError(t, err, ext)
		require.Equal(t, 5, m.Width())
		require.Equal(t, 4, m.Height())
		for y := 0; y < 4; y++ {
			for x := 0; x < 5; x++ {
				r, _, _ := m.RGB(x, y)
				assert.Equal(t, (x+y)%2 == 0, r == 255, "%s (%d,%d)", ext, x, y)
			}
		}
	}
}

func TestDecode_Unsupported(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil), ".psd")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.False(t, Supported(".psd"))
	assert.True(t, Supported(".TGA"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Room.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, checker(3, 3)))
	require.NoError(t, f.Close())

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 27, len(m.Pix()))

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.png"), []byte("nope"), 0644))
	_, err = Load(filepath.Join(dir, "junk.png"))
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "b.png", "A.bmp", "c.tga", "c.gif", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0755))

	entries, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "a", Path: filepath.Join(dir, "A.bmp")},
		{Name: "b", Path: filepath.Join(dir, "b.png")},
		{Name: "c", Path: filepath.Join(dir, "c.tga")},
	}, entries)

	_, err = Scan(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestEntryFor(t *testing.T) {
	assert.Equal(t, Entry{Name: "dungeon_01", Path: "in/Dungeon_01.PNG"}, EntryFor("in/Dungeon_01.PNG"))
}

func TestDedupe(t *testing.T) {
	entries := []Entry{
		EntryFor("a/x.png"),
		EntryFor("b/y.bmp"),
		EntryFor("b/X.tga"),
		EntryFor("c/x.png"),
	}
	kept, dropped := Dedupe(entries)
	assert.Equal(t, []Entry{{Name: "x", Path: "a/x.png"}, {Name: "y", Path: "b/y.bmp"}}, kept)
	assert.Equal(t, []Entry{{Name: "x", Path: "b/X.tga"}, {Name: "x", Path: "c/x.png"}}, dropped)

	kept, dropped = Dedupe(nil)
	assert.Empty(t, kept)
	assert.Empty(t, dropped)
}
