package capture

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ftrvxmtrx/tga"

	"nvt-replay-renderer/internal/pixbuf"
)

// LoadChannel reads one captured channel file and promotes it to a float
// buffer. Two container formats are understood: headerless .raw dumps
// (row-major RGBA8, stored bottom-up) and .tga exports from older capture
// tooling. Raw rows are flipped during ingest so callers always see the
// frame top-down.
func LoadChannel(path string, w, h int) (*pixbuf.Buffer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("capture: read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".raw":
		want := w * h * 4
		if len(raw) < want {
			return nil, fmt.Errorf("capture: %s truncated: %d bytes, want %d", path, len(raw), want)
		}
		return pixbuf.FromRGBA8(raw[:want], w, h, true), nil
	case ".tga":
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("capture: decode %s: %w", path, err)
		}
		b := img.Bounds()
		if b.Dx() != w || b.Dy() != h {
			return nil, fmt.Errorf("capture: %s is %dx%d, want %dx%d", path, b.Dx(), b.Dy(), w, h)
		}
		return pixbuf.FromImage(img), nil
	default:
		return nil, fmt.Errorf("capture: unknown extension: %s", ext)
	}
}
