package pixbuf

import "image"

// Buffer is a 4-channel float32 pixel grid stored as a flat interleaved
// slice for cache locality. It is the working currency of every pass:
// captured 8-bit channels are promoted to float on ingest and stay float
// until the compositor exports the finished frame.
type Buffer struct {
	Width  int
	Height int
	Pix    []float32 // RGBA interleaved, len = W*H*4
}

// New allocates a zero-filled buffer.
func New(w, h int) *Buffer {
	return &Buffer{
		Width:  w,
		Height: h,
		Pix:    make([]float32, w*h*4),
	}
}

// Index returns the flat offset of pixel (x, y).
func (b *Buffer) Index(x, y int) int {
	return (y*b.Width + x) * 4
}

// At returns the four channels at (x, y). Coordinates outside the grid
// are clamped to the nearest edge texel.
func (b *Buffer) At(x, y int) (r, g, bl, a float64) {
	x = clampInt(x, 0, b.Width-1)
	y = clampInt(y, 0, b.Height-1)
	i := b.Index(x, y)
	return float64(b.Pix[i]), float64(b.Pix[i+1]), float64(b.Pix[i+2]), float64(b.Pix[i+3])
}

// Set writes the four channels at (x, y). Out-of-grid writes are dropped.
func (b *Buffer) Set(x, y int, r, g, bl, a float64) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	i := b.Index(x, y)
	b.Pix[i] = float32(r)
	b.Pix[i+1] = float32(g)
	b.Pix[i+2] = float32(bl)
	b.Pix[i+3] = float32(a)
}

// Fill sets every pixel to the given channel values.
func (b *Buffer) Fill(r, g, bl, a float64) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = float32(r)
		b.Pix[i+1] = float32(g)
		b.Pix[i+2] = float32(bl)
		b.Pix[i+3] = float32(a)
	}
}

// CopyFrom copies src's pixels into b. Both buffers must share dimensions;
// mismatched sources are ignored.
func (b *Buffer) CopyFrom(src *Buffer) {
	if src == nil || src.Width != b.Width || src.Height != b.Height {
		return
	}
	copy(b.Pix, src.Pix)
}

// ToNRGBA exports the buffer as an 8-bit NRGBA image, clamping each
// channel to [0, 1].
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i := 0; i < len(b.Pix); i += 4 {
		j := i // NRGBA stride matches the packed layout for a full-width rect
		img.Pix[j] = clampByte(b.Pix[i])
		img.Pix[j+1] = clampByte(b.Pix[i+1])
		img.Pix[j+2] = clampByte(b.Pix[i+2])
		img.Pix[j+3] = clampByte(b.Pix[i+3])
	}
	return img
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
