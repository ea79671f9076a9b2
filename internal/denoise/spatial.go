package denoise

import (
	"math"

	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/pixbuf"
)

// gauss5 is the 5x5 binomial kernel, the outer product of [1 4 6 4 1]/16.
var gauss5 = func() [25]float64 {
	row := [5]float64{1, 4, 6, 4, 1}
	var k [25]float64
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			k[y*5+x] = row[y] * row[x] / 256
		}
	}
	return k
}()

// SpatialBilateral runs the 3x3 depth-aware bilateral filter over rows
// [y0, y1). Pixels whose history age passed the cutoff are temporally
// converged and pass through unfiltered; info is the metadata the first
// temporal stage wrote this frame.
func SpatialBilateral(src, info *pixbuf.Buffer, depth *pixbuf.Scalar, dst *pixbuf.Buffer, y0, y1 int) {
	w := src.Width
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			age, _, _, _ := info.At(x, y)
			if age > config.BilateralAgeCutoff {
				r, g, b, a := src.At(x, y)
				dst.Set(x, y, r, g, b, a)
				continue
			}

			centerDepth := depth.At(x, y)
			var sumR, sumG, sumB, sumW float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					wt := bilateralWeight(dx, dy, depth.At(x+dx, y+dy)-centerDepth)
					r, g, b, _ := src.At(x+dx, y+dy)
					sumR += r * wt
					sumG += g * wt
					sumB += b * wt
					sumW += wt
				}
			}
			sumW = math.Max(sumW, config.DenoiseEps)
			_, _, _, a := src.At(x, y)
			dst.Set(x, y, sumR/sumW, sumG/sumW, sumB/sumW, a)
		}
	}
}

func bilateralWeight(dx, dy int, depthDelta float64) float64 {
	dist2 := float64(dx*dx + dy*dy)
	spatial := math.Exp(-dist2 / (2 * config.BilateralSigmaPos * config.BilateralSigmaPos))
	rng := math.Exp(-(depthDelta * depthDelta) / (2 * config.BilateralSigmaDep * config.BilateralSigmaDep))
	return spatial * rng
}

// SpatialGaussian runs the fixed 5x5 Gaussian over rows [y0, y1). The
// kernel weights are static and sum to one, so edges only see the clamped
// border texels.
func SpatialGaussian(src, dst *pixbuf.Buffer, y0, y1 int) {
	w := src.Width
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			var sumR, sumG, sumB float64
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					wt := gauss5[(dy+2)*5+(dx+2)]
					r, g, b, _ := src.At(x+dx, y+dy)
					sumR += r * wt
					sumG += g * wt
					sumB += b * wt
				}
			}
			_, _, _, a := src.At(x, y)
			dst.Set(x, y, sumR, sumG, sumB, a)
		}
	}
}
