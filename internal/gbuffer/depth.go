// Package gbuffer decodes the packed capture channels into usable fields:
// 24-bit packed depth into normalized linear depth, and packed motion
// vectors into UV offsets.
package gbuffer

import (
	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/pixbuf"
)

const depthMax = 1<<24 - 1

// UnpackDepth recovers the normalized device depth from one texel of the
// packed channel: z was scaled by 2^24-1 and split little-endian across
// r, g, b.
func UnpackDepth(r, g, b float64) float64 {
	packed := pixbuf.Byte(float32(r)) |
		pixbuf.Byte(float32(g))<<8 |
		pixbuf.Byte(float32(b))<<16
	return float64(packed) / depthMax
}

// Linearize converts device depth to a linear view-space distance using
// the capture's projection planes.
func Linearize(z float64) float64 {
	return (config.NearPlane * config.FarPlane) /
		(config.FarPlane - z*(config.FarPlane-config.NearPlane))
}

// Normalize maps a linear depth to [0, 1] against the far plane. Depths
// at or beyond the far plane saturate to 1, which downstream passes treat
// as sky.
func Normalize(linear float64) float64 {
	if linear < config.FarPlane {
		return linear / config.FarPlane
	}
	return 1
}

// IsSky reports whether a normalized depth belongs to the sky or the far
// plane.
func IsSky(normalized float64) bool {
	return normalized >= config.SkyDepthThreshold
}

// ReconstructDepth decodes the whole packed depth channel into a grid of
// normalized linear depths.
func ReconstructDepth(packed *pixbuf.Buffer) *pixbuf.Scalar {
	out := pixbuf.NewScalar(packed.Width, packed.Height)
	for y := 0; y < packed.Height; y++ {
		for x := 0; x < packed.Width; x++ {
			r, g, b, _ := packed.At(x, y)
			out.Set(x, y, Normalize(Linearize(UnpackDepth(r, g, b))))
		}
	}
	return out
}

// Frame is the decoded per-frame G-buffer: normalized linear depth plus
// the two mask channels carried in the normal and albedo alpha.
type Frame struct {
	Depth *pixbuf.Scalar
	MaskA *pixbuf.Scalar
	MaskB *pixbuf.Scalar
}

// Reconstruct builds the full G-buffer frame from the packed depth,
// normal and albedo channels.
func Reconstruct(packed, normal, albedo *pixbuf.Buffer) *Frame {
	f := &Frame{
		Depth: ReconstructDepth(packed),
		MaskA: pixbuf.NewScalar(packed.Width, packed.Height),
		MaskB: pixbuf.NewScalar(packed.Width, packed.Height),
	}
	for y := 0; y < packed.Height; y++ {
		for x := 0; x < packed.Width; x++ {
			_, _, _, na := normal.At(x, y)
			_, _, _, aa := albedo.At(x, y)
			f.MaskA.Set(x, y, na)
			f.MaskB.Set(x, y, aa)
		}
	}
	return f
}
