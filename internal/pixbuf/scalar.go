package pixbuf

// Scalar is a single-channel float32 grid. Depth fields and other
// per-pixel scalars use it instead of wasting three channels of a Buffer.
type Scalar struct {
	Width  int
	Height int
	V      []float32
}

// NewScalar allocates a zero-filled scalar grid.
func NewScalar(w, h int) *Scalar {
	return &Scalar{Width: w, Height: h, V: make([]float32, w*h)}
}

// At returns the value at (x, y), clamping coordinates to the grid.
func (s *Scalar) At(x, y int) float64 {
	x = clampInt(x, 0, s.Width-1)
	y = clampInt(y, 0, s.Height-1)
	return float64(s.V[y*s.Width+x])
}

// Set writes the value at (x, y). Out-of-grid writes are dropped.
func (s *Scalar) Set(x, y int, v float64) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return
	}
	s.V[y*s.Width+x] = float32(v)
}

// SamplePoint fetches the nearest value to UV in [0,1]^2.
func (s *Scalar) SamplePoint(u, v float64) float64 {
	x := int(u * float64(s.Width))
	y := int(v * float64(s.Height))
	return s.At(x, y)
}

// Fill sets every cell to v.
func (s *Scalar) Fill(v float64) {
	f := float32(v)
	for i := range s.V {
		s.V[i] = f
	}
}
