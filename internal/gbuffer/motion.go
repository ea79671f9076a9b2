package gbuffer

import (
	"math"

	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/pixbuf"
)

// DecodeMotion recovers the UV-space motion offset from one texel of the
// packed motion channel. The 24-bit value carries two 10-bit quantized
// components with 511 as the zero point; the signed quadratic mapping
// gives small motions sub-quantum precision at the cost of range.
func DecodeMotion(r, g, b float64) (du, dv float64) {
	packed := pixbuf.Byte(float32(r)) |
		pixbuf.Byte(float32(g))<<8 |
		pixbuf.Byte(float32(b))<<16
	qx := packed & 0x3FF
	qy := (packed >> 10) & 0x3FF
	return dequantize(qx), dequantize(qy)
}

func dequantize(q uint32) float64 {
	c := (float64(q) - 511) / 511
	return c * math.Abs(c) * config.MotionScale
}

// DecodeMotionField decodes the whole motion channel into a buffer with
// the UV offset in the first two channels.
func DecodeMotionField(packed *pixbuf.Buffer) *pixbuf.Buffer {
	out := pixbuf.New(packed.Width, packed.Height)
	for y := 0; y < packed.Height; y++ {
		for x := 0; x < packed.Width; x++ {
			r, g, b, _ := packed.At(x, y)
			du, dv := DecodeMotion(r, g, b)
			out.Set(x, y, du, dv, 0, 0)
		}
	}
	return out
}
