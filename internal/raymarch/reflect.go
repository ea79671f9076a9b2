package raymarch

import (
	"math"

	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/mathutil"
	"nvt-replay-renderer/internal/pixbuf"
)

// Reflection is the outcome of the screen-space specular search. Ok is
// false for the miss sentinel: the ray left the valid UV/view-Z domain or
// the refinement budget ran out, and R/G/B are zero.
type Reflection struct {
	Ok      bool
	R, G, B float64
}

// TraceReflection marches the mirror direction from a primary hit through
// screen space against the reconstructed depth buffer. The step grows
// geometrically while the ray stays in front of the captured surface;
// once the signed depth error enters the bias/thickness window the march
// backtracks with rapidly shrinking steps until the error drops under the
// bias or the refinement budget runs out.
func TraceReflection(cam Camera, hit Hit, viewDir mathutil.Vec3, depth *pixbuf.Scalar, color *pixbuf.Buffer) Reflection {
	refl := viewDir.Reflect(hit.Normal)
	pos := hit.Point.Add(refl.Scale(config.ReflectBias * 10))

	grow := 1 + 1/math.Sqrt(config.ReflectStepBudget)
	step := config.ReflectBias * 10

	for i := 0; i < config.ReflectStepBudget; i++ {
		pos = pos.Add(refl.Scale(step))
		u, v, viewZ, ok := cam.Project(pos)
		if !ok {
			return Reflection{}
		}
		err := depthError(depth, u, v, viewZ)
		if err > config.ReflectBias {
			if err < config.ReflectThickness {
				return refine(cam, pos, refl, step, depth, color)
			}
			return Reflection{}
		}
		step *= grow
	}
	return Reflection{}
}

// refine bisects around the crossing point until the depth error falls
// inside the bias band. Halving keeps every refinement iteration
// meaningful: the step still covers the full bracket after the budget is
// spent, instead of collapsing to nothing after the first backtrack.
func refine(cam Camera, pos, dir mathutil.Vec3, step float64, depth *pixbuf.Scalar, color *pixbuf.Buffer) Reflection {
	for i := 0; i < config.ReflectRefineBudget; i++ {
		u, v, viewZ, ok := cam.Project(pos)
		if !ok {
			return Reflection{}
		}
		err := depthError(depth, u, v, viewZ)
		if math.Abs(err) <= config.ReflectBias {
			r, g, b, _ := color.SampleBilinear(u, v)
			return Reflection{Ok: true, R: r, G: g, B: b}
		}
		step *= 0.5
		if err > 0 {
			pos = pos.Sub(dir.Scale(step))
		} else {
			pos = pos.Add(dir.Scale(step))
		}
	}
	return Reflection{}
}

// depthError is the signed distance the marched point sits behind the
// captured surface at its UV, in normalized depth units.
func depthError(depth *pixbuf.Scalar, u, v, viewZ float64) float64 {
	return viewZ/config.FarPlane - depth.SamplePoint(u, v)
}
