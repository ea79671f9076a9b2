package pipeline

import (
	"image"

	"golang.org/x/image/draw"

	"nvt-replay-renderer/internal/pixbuf"
)

// downsample reduces a captured buffer to the working resolution by
// point-sampling every stride-th texel. Stride 1 passes the buffer
// through untouched.
func downsample(src *pixbuf.Buffer, stride int) *pixbuf.Buffer {
	if stride <= 1 {
		return src
	}
	dst := pixbuf.New(src.Width/stride, src.Height/stride)
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			r, g, b, a := src.At(x*stride, y*stride)
			dst.Set(x, y, r, g, b, a)
		}
	}
	return dst
}

// upscale brings the finished working-resolution frame back to display
// resolution with CatmullRom filtering. A matching size passes through.
func upscale(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
