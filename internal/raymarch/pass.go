package raymarch

import (
	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/pixbuf"
)

// Render composites the analytic scene over the captured color for rows
// [y0, y1). A marched pixel replaces the source color only when the hit
// is both inside the march range and nearer than the captured scene
// depth; every other pixel passes through untouched.
func Render(cam Camera, color *pixbuf.Buffer, depth *pixbuf.Scalar, dst *pixbuf.Buffer, y0, y1 int) {
	w, h := color.Width, color.Height
	for y := y0; y < y1; y++ {
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			r, g, b, a := color.At(x, y)

			dir := cam.Ray(u, v)
			hit := Trace(cam.Origin, dir)
			sceneDepth := depth.At(x, y) * config.FarPlane
			if hit.Dist < config.MarchMaxDist && hit.Dist < sceneDepth {
				shaded := Shade(hit.Point, hit.Normal)
				r, g, b = shaded[0], shaded[1], shaded[2]
				if refl := TraceReflection(cam, hit, dir, depth, color); refl.Ok {
					r += (refl.R - r) * config.ReflectMixWeight
					g += (refl.G - g) * config.ReflectMixWeight
					b += (refl.B - b) * config.ReflectMixWeight
				}
				a = 1
			}
			dst.Set(x, y, r, g, b, a)
		}
	}
}
