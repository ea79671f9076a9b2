package raymarch

import (
	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/mathutil"
)

// Hit is the outcome of a primary march. When Ok is false the ray ran out
// of steps or distance and the fields besides Dist are meaningless.
type Hit struct {
	Ok     bool
	Dist   float64
	Point  mathutil.Vec3
	Normal mathutil.Vec3
}

// Trace sphere-traces the analytic scene from origin along dir. The march
// stops on the first sample within the surface epsilon, or when the step
// budget or max distance runs out.
func Trace(origin, dir mathutil.Vec3) Hit {
	t := 0.0
	for i := 0; i < config.MarchMaxSteps; i++ {
		p := origin.Add(dir.Scale(t))
		d := SceneSDF(p)
		if d < config.MarchSurfaceEps {
			return Hit{Ok: true, Dist: t, Point: p, Normal: SceneNormal(p)}
		}
		t += d
		if t >= config.MarchMaxDist {
			break
		}
	}
	return Hit{Dist: config.MarchMaxDist}
}
