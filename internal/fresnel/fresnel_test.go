package fresnel

import (
	"math"
	"testing"

	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/pixbuf"
	"nvt-replay-renderer/internal/raymarch"
)

func TestSchlick(t *testing.T) {
	if got := Schlick(1); math.Abs(got-1) > 1e-12 {
		t.Errorf("Schlick(1) = %v, want 1", got)
	}
	if got := Schlick(0); math.Abs(got-config.FresnelF0) > 1e-12 {
		t.Errorf("Schlick(0) = %v, want F0 %v", got, float64(config.FresnelF0))
	}
	// Out-of-range cosines clamp instead of exploding.
	if got := Schlick(-0.5); math.Abs(got-config.FresnelF0) > 1e-12 {
		t.Errorf("Schlick(-0.5) = %v, want F0", got)
	}
	if got := Schlick(2); math.Abs(got-1) > 1e-12 {
		t.Errorf("Schlick(2) = %v, want 1", got)
	}
}

func TestSchlickMonotonic(t *testing.T) {
	prev := -1.0
	for c := 0.0; c <= 1.0; c += 0.05 {
		f := Schlick(c)
		if f < prev {
			t.Fatalf("fresnel decreased at cos=%v: %v < %v", c, f, prev)
		}
		if f < 0 || f > 1 {
			t.Fatalf("fresnel out of range at cos=%v: %v", c, f)
		}
		prev = f
	}
}

func TestEstimateSkyIsZero(t *testing.T) {
	const w, h = 8, 8
	cam := raymarch.NewCamera(w, h)
	depth := pixbuf.NewScalar(w, h)
	depth.Fill(1)

	dst := pixbuf.NewScalar(w, h)
	dst.Fill(0.5)
	Estimate(cam, depth, dst, 0, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if v := dst.At(x, y); v != 0 {
				t.Fatalf("sky fresnel at (%d,%d) = %v, want 0", x, y, v)
			}
		}
	}
}

func TestEstimateStaysInRange(t *testing.T) {
	const w, h = 16, 16
	cam := raymarch.NewCamera(w, h)
	depth := pixbuf.NewScalar(w, h)
	// Vertical depth ramp with a step edge in the middle.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := 0.1 + 0.5*float64(y)/float64(h-1)
			if x > w/2 {
				d += 0.2
			}
			depth.Set(x, y, d)
		}
	}

	dst := pixbuf.NewScalar(w, h)
	Estimate(cam, depth, dst, 0, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := dst.At(x, y)
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Fatalf("fresnel at (%d,%d) = %v, want within [0,1]", x, y, v)
			}
		}
	}
}
