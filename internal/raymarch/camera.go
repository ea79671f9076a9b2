// Package raymarch sphere-traces an analytic scene into the captured
// frame and runs a screen-space specular reflection search against the
// reconstructed depth buffer.
package raymarch

import (
	"math"

	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/mathutil"
)

// Camera is the fixed pinhole camera the analytic passes share. It sits
// axis-aligned looking down +Z so that projecting a marched point back to
// UV needs no rotation, only the perspective divide.
type Camera struct {
	Origin  mathutil.Vec3
	aspect  float64
	tanHalf float64
}

const cameraFovY = 60.0 // degrees

// NewCamera builds the camera for a given working aspect ratio.
func NewCamera(width, height int) Camera {
	return Camera{
		Origin:  mathutil.Vec3{0, 1, -3},
		aspect:  float64(width) / float64(height),
		tanHalf: math.Tan(cameraFovY * math.Pi / 360),
	}
}

// Ray returns the normalized view ray through UV in [0,1]^2, with v
// increasing downward to match the pixel convention.
func (c Camera) Ray(u, v float64) mathutil.Vec3 {
	d := mathutil.Vec3{
		(2*u - 1) * c.tanHalf * c.aspect,
		(1 - 2*v) * c.tanHalf,
		1,
	}
	return d.Normalize()
}

// Project maps a world point back to UV and view depth. The boolean is
// false when the point lies behind the near plane or outside the unit UV
// square, which every march treats as leaving the valid domain.
func (c Camera) Project(p mathutil.Vec3) (u, v, viewZ float64, ok bool) {
	rel := p.Sub(c.Origin)
	viewZ = rel[2]
	if viewZ < config.NearPlane || viewZ > config.FarPlane {
		return 0, 0, viewZ, false
	}
	u = 0.5 + rel[0]/(viewZ*c.tanHalf*c.aspect)/2
	v = 0.5 - rel[1]/(viewZ*c.tanHalf)/2
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return u, v, viewZ, false
	}
	return u, v, viewZ, true
}

// Unproject reconstructs the world point at UV with the given view depth.
func (c Camera) Unproject(u, v, viewZ float64) mathutil.Vec3 {
	return mathutil.Vec3{
		c.Origin[0] + (2*u-1)*c.tanHalf*c.aspect*viewZ,
		c.Origin[1] + (1-2*v)*c.tanHalf*viewZ,
		c.Origin[2] + viewZ,
	}
}
