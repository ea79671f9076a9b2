package raymarch

import (
	"math"

	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/mathutil"
)

// Analytic scene: one sphere resting on a ground plane at y = 0.
var (
	sphereCenter = mathutil.Vec3{0, 1, 2}
	lightDir     = mathutil.Vec3{-0.5, -1, -0.3}.Normalize()

	albedoUpper = mathutil.Vec3{0.85, 0.35, 0.25}
	albedoLower = mathutil.Vec3{0.55, 0.6, 0.65}
)

const (
	sphereRadius    = 1.0
	albedoHeightCut = 0.05
)

// SceneSDF evaluates the signed distance from p to the nearest surface.
func SceneSDF(p mathutil.Vec3) float64 {
	sphere := p.Sub(sphereCenter).Len() - sphereRadius
	plane := p[1]
	return math.Min(sphere, plane)
}

// SceneNormal estimates the surface normal at p by forward differencing
// the distance field along each axis.
func SceneNormal(p mathutil.Vec3) mathutil.Vec3 {
	const e = config.MarchNormalEps
	d := SceneSDF(p)
	n := mathutil.Vec3{
		SceneSDF(mathutil.Vec3{p[0] + e, p[1], p[2]}) - d,
		SceneSDF(mathutil.Vec3{p[0], p[1] + e, p[2]}) - d,
		SceneSDF(mathutil.Vec3{p[0], p[1], p[2] + e}) - d,
	}
	return n.Normalize()
}

// Shade applies the single directional light with a clamped Lambertian
// term and a two-tone albedo split at a fixed height.
func Shade(p, n mathutil.Vec3) mathutil.Vec3 {
	lambert := mathutil.Clamp(n.Dot(lightDir.Scale(-1)), 0.2, 1.0)
	albedo := albedoLower
	if p[1] > albedoHeightCut {
		albedo = albedoUpper
	}
	return albedo.Scale(lambert)
}
