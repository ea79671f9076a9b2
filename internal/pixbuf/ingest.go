package pixbuf

import "image"

// FromRGBA8 promotes a raw row-major RGBA8 byte stream to a float buffer.
// Capture files store rows bottom-up, so when flip is set the rows are
// reversed during ingest to restore the natural top-down orientation.
func FromRGBA8(data []byte, w, h int, flip bool) *Buffer {
	b := New(w, h)
	rowBytes := w * 4
	for y := 0; y < h; y++ {
		srcRow := y
		if flip {
			srcRow = h - 1 - y
		}
		src := data[srcRow*rowBytes : srcRow*rowBytes+rowBytes]
		dst := b.Pix[y*rowBytes : y*rowBytes+rowBytes]
		for i, v := range src {
			dst[i] = float32(v) / 255
		}
	}
	return b
}

// FromImage promotes any decoded image to a float buffer. Used for .tga
// captures, which decode through the standard image interface.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	b := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := b.Index(x, y)
			b.Pix[i] = float32(r) / 65535
			b.Pix[i+1] = float32(g) / 65535
			b.Pix[i+2] = float32(bl) / 65535
			b.Pix[i+3] = float32(a) / 65535
		}
	}
	return b
}

// Byte returns the raw 8-bit value a channel would round-trip to. Depth
// and motion unpacking need the original quantized bytes rather than the
// float promotion.
func Byte(v float32) uint32 {
	return uint32(v*255 + 0.5)
}
