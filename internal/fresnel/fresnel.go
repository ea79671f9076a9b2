// Package fresnel computes the per-pixel view-dependent reflectance used
// to weight the second temporal blend.
package fresnel

import (
	"math"

	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/gbuffer"
	"nvt-replay-renderer/internal/mathutil"
	"nvt-replay-renderer/internal/pixbuf"
	"nvt-replay-renderer/internal/raymarch"
)

// Schlick evaluates the reflectance term for a reflection/half-vector
// cosine in [0, 1].
func Schlick(cosRH float64) float64 {
	c := mathutil.Saturate(cosRH)
	exp := 5 / (config.FresnelIntensity * config.FresnelIntensity)
	f := config.FresnelF0 + (1-config.FresnelF0)*math.Pow(c, exp)
	return mathutil.Saturate(f)
}

// Estimate fills dst with the fresnel term for rows [y0, y1). The normal
// comes from a four-tap cross finite difference of reconstructed
// positions; per axis the side with the smaller depth discontinuity wins,
// which keeps silhouettes from bleeding reflectance across edges. Sky
// pixels are forced to zero.
func Estimate(cam raymarch.Camera, depth *pixbuf.Scalar, dst *pixbuf.Scalar, y0, y1 int) {
	w, h := depth.Width, depth.Height
	for y := y0; y < y1; y++ {
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			d := depth.At(x, y)
			if gbuffer.IsSky(d) {
				dst.Set(x, y, 0)
				continue
			}
			u := (float64(x) + 0.5) / float64(w)

			p := position(cam, depth, x, y, w, h)
			n := crossNormal(cam, depth, x, y, w, h, p, d)

			view := cam.Ray(u, v)
			eye := view.Scale(-1)
			if n.Dot(eye) < 0 {
				n = n.Scale(-1)
			}
			refl := view.Reflect(n)
			half := refl.Add(eye)
			if half.Len() < config.DenoiseEps {
				dst.Set(x, y, 0)
				continue
			}
			half = half.Normalize()

			dst.Set(x, y, Schlick(refl.Dot(half)))
		}
	}
}

// position reconstructs the world point of pixel (x, y) from its depth.
func position(cam raymarch.Camera, depth *pixbuf.Scalar, x, y, w, h int) mathutil.Vec3 {
	u := (float64(x) + 0.5) / float64(w)
	v := (float64(y) + 0.5) / float64(h)
	return cam.Unproject(u, v, depth.At(x, y)*config.FarPlane)
}

// crossNormal derives the surface normal from the position cross, taking
// per axis the neighbor whose depth is closer to the center's.
func crossNormal(cam raymarch.Camera, depth *pixbuf.Scalar, x, y, w, h int, center mathutil.Vec3, d float64) mathutil.Vec3 {
	dx := axisDelta(cam, depth, x, y, w, h, center, d, 1, 0)
	dy := axisDelta(cam, depth, x, y, w, h, center, d, 0, 1)
	n := dx.Cross(dy)
	if n.Len() < config.DenoiseEps {
		return mathutil.Vec3{0, 0, -1}
	}
	return n.Normalize()
}

func axisDelta(cam raymarch.Camera, depth *pixbuf.Scalar, x, y, w, h int, center mathutil.Vec3, d float64, sx, sy int) mathutil.Vec3 {
	dPos := depth.At(x+sx, y+sy)
	dNeg := depth.At(x-sx, y-sy)
	if math.Abs(dPos-d) <= math.Abs(dNeg-d) {
		return position(cam, depth, x+sx, y+sy, w, h).Sub(center)
	}
	return center.Sub(position(cam, depth, x-sx, y-sy, w, h))
}
