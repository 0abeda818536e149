package bitmap

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrUnsupported is returned for file extensions with no decoder.
var ErrUnsupported = errors.New("bitmap: unsupported format")

type decodeFunc func(io.Reader) (image.Image, error)

// decoders is keyed by lowercase extension. TGA has no magic number, so
// dispatch is by extension rather than image.Decode sniffing.
var decoders = map[string]decodeFunc{
	".png":  png.Decode,
	".bmp":  bmp.Decode,
	".tga":  tga.Decode,
	".webp": webp.Decode,
	".gif":  gif.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
}

// Supported reports whether ext (with dot, any case) can be decoded.
func Supported(ext string) bool {
	_, ok := decoders[strings.ToLower(ext)]
	return ok
}

// Decode reads one silhouette encoded in the format named by ext.
func Decode(r io.Reader, ext string) (*Image, error) {
	dec, ok := decoders[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	img, err := dec(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// Load reads and decodes the silhouette at path.
func Load(path string) (*Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bitmap: read %s: %w", path, err)
	}
	img, err := Decode(bytes.NewReader(raw), filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("bitmap: decode %s: %w", path, err)
	}
	return img, nil
}
