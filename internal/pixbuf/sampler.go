package pixbuf

import "math"

// SamplePoint fetches the nearest texel to UV in [0,1]^2. Coordinates
// outside the unit square clamp to the border texel.
func (b *Buffer) SamplePoint(u, v float64) (r, g, bl, a float64) {
	x := int(u * float64(b.Width))
	y := int(v * float64(b.Height))
	return b.At(x, y)
}

// SampleBilinear fetches a bilinearly filtered value at UV in [0,1]^2,
// clamping at the borders.
func (b *Buffer) SampleBilinear(u, v float64) (r, g, bl, a float64) {
	fx := u*float64(b.Width) - 0.5
	fy := v*float64(b.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	r00, g00, b00, a00 := b.At(x0, y0)
	r10, g10, b10, a10 := b.At(x0+1, y0)
	r01, g01, b01, a01 := b.At(x0, y0+1)
	r11, g11, b11, a11 := b.At(x0+1, y0+1)

	lerp := func(lo, hi, t float64) float64 { return lo + (hi-lo)*t }

	r = lerp(lerp(r00, r10, tx), lerp(r01, r11, tx), ty)
	g = lerp(lerp(g00, g10, tx), lerp(g01, g11, tx), ty)
	bl = lerp(lerp(b00, b10, tx), lerp(b01, b11, tx), ty)
	a = lerp(lerp(a00, a10, tx), lerp(a01, a11, tx), ty)
	return r, g, bl, a
}
