package denoise

import (
	"math"

	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/pixbuf"
)

// Info buffer channel layout: r = age, g = luminance second moment,
// b = depth at write time.

// Reproject resolves one pixel's history lookup. It returns the past UV
// and whether the sample survived both disocclusion checks: the past UV
// must stay inside the unit square and the depth recorded when the
// history was written must match the live depth within tolerance.
func Reproject(u, v, du, dv, liveDepth, depthAtWrite float64) (pastU, pastV float64, valid bool) {
	pastU = u + du
	pastV = v + dv
	if pastU < 0 || pastU > 1 || pastV < 0 || pastV > 1 {
		return pastU, pastV, false
	}
	if math.Abs(liveDepth-depthAtWrite) > config.DepthTolerance {
		return pastU, pastV, false
	}
	return pastU, pastV, true
}

// UpdateAge advances a pixel's history age: disocclusion resets it before
// the increment, and the result saturates at MaxHistoryFrames.
func UpdateAge(prev float64, valid bool) float64 {
	if !valid {
		prev = 0
	}
	return math.Min(prev+1, config.MaxHistoryFrames)
}

// luminance is the Rec.601 luma of a linear color.
func luminance(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

// TemporalStage1 runs the first motion-compensated blend over rows
// [y0, y1). History color is the previous frame's first-spatial output;
// histInfo is this stage's own metadata. The blend weight is 1/age, so a
// freshly disoccluded pixel takes the current sample outright.
func TemporalStage1(cur, motion *pixbuf.Buffer, depth *pixbuf.Scalar,
	histColor, histInfo, outColor, outInfo *pixbuf.Buffer, y0, y1 int) {
	w, h := cur.Width, cur.Height
	for y := y0; y < y1; y++ {
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			cr, cg, cb, ca := cur.At(x, y)
			du, dv, _, _ := motion.At(x, y)
			liveDepth := depth.At(x, y)

			pu, pv, valid := reprojectThrough(histInfo, u, v, du, dv, liveDepth)
			age := histAge(histInfo, pu, pv, valid)
			age = UpdateAge(age, valid)
			weight := 1 / math.Max(age, config.DenoiseEps)

			or, og, ob := cr, cg, cb
			if valid {
				hr, hg, hb, _ := histColor.SampleBilinear(pu, pv)
				or = hr + (cr-hr)*weight
				og = hg + (cg-hg)*weight
				ob = hb + (cb-hb)*weight
			}

			lum := luminance(cr, cg, cb)
			m2 := lum * lum
			if age > config.MomentAgeThreshold {
				_, hm2, _, _ := histInfo.SamplePoint(pu, pv)
				m2 = hm2 + (m2-hm2)*weight
			}

			outColor.Set(x, y, or, og, ob, ca)
			outInfo.Set(x, y, age, m2, liveDepth, 0)
		}
	}
}

// TemporalStage2 runs the final blend over rows [y0, y1). It adds the
// neighborhood variance clamp on the fetched history and raises the blend
// weight to at least the pixel's fresnel term, so strongly reflective
// pixels track the live reflection instead of stale history.
func TemporalStage2(cur, motion *pixbuf.Buffer, depth, fres *pixbuf.Scalar,
	histColor, histInfo, outColor, outInfo *pixbuf.Buffer, y0, y1 int) {
	w, h := cur.Width, cur.Height
	for y := y0; y < y1; y++ {
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			cr, cg, cb, ca := cur.At(x, y)
			du, dv, _, _ := motion.At(x, y)
			liveDepth := depth.At(x, y)

			pu, pv, valid := reprojectThrough(histInfo, u, v, du, dv, liveDepth)
			age := histAge(histInfo, pu, pv, valid)
			age = UpdateAge(age, valid)
			weight := 1 / math.Max(age, config.DenoiseEps)
			if f := fres.At(x, y); f > weight {
				weight = f
			}

			or, og, ob := cr, cg, cb
			if valid {
				hr, hg, hb, _ := histColor.SampleBilinear(pu, pv)
				mr, mg, mb, sr, sg, sb := neighborhoodMoments(cur, x, y)
				hr = ClipToBox(hr, mr, sr)
				hg = ClipToBox(hg, mg, sg)
				hb = ClipToBox(hb, mb, sb)
				or = hr + (cr-hr)*weight
				og = hg + (cg-hg)*weight
				ob = hb + (cb-hb)*weight
			}

			lum := luminance(cr, cg, cb)
			outColor.Set(x, y, or, og, ob, ca)
			outInfo.Set(x, y, age, lum*lum, liveDepth, 0)
		}
	}
}

// ClipToBox clamps a history channel into the variance box around the
// current neighborhood mean. Values already inside the box come back
// unchanged.
func ClipToBox(v, mean, sigma float64) float64 {
	lo := mean - config.VarianceClipK*sigma
	hi := mean + config.VarianceClipK*sigma
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// neighborhoodMoments computes per-channel mean and standard deviation of
// the current signal over the 3x3 window centered at (x, y).
func neighborhoodMoments(cur *pixbuf.Buffer, x, y int) (mr, mg, mb, sr, sg, sb float64) {
	var sum, sq [3]float64
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			r, g, b, _ := cur.At(x+dx, y+dy)
			sum[0] += r
			sum[1] += g
			sum[2] += b
			sq[0] += r * r
			sq[1] += g * g
			sq[2] += b * b
		}
	}
	const n = 9
	mr, mg, mb = sum[0]/n, sum[1]/n, sum[2]/n
	sr = math.Sqrt(math.Max(sq[0]/n-mr*mr, 0))
	sg = math.Sqrt(math.Max(sq[1]/n-mg*mg, 0))
	sb = math.Sqrt(math.Max(sq[2]/n-mb*mb, 0))
	return mr, mg, mb, sr, sg, sb
}

// reprojectThrough fetches the depth-at-write from the history info buffer
// and defers the actual disocclusion checks to Reproject. SamplePoint clamps
// out-of-range UVs, which is harmless here: Reproject rejects those first.
func reprojectThrough(histInfo *pixbuf.Buffer, u, v, du, dv, liveDepth float64) (float64, float64, bool) {
	_, _, depthAtWrite, _ := histInfo.SamplePoint(u+du, v+dv)
	return Reproject(u, v, du, dv, liveDepth, depthAtWrite)
}

func histAge(histInfo *pixbuf.Buffer, pu, pv float64, valid bool) float64 {
	if !valid {
		return 0
	}
	age, _, _, _ := histInfo.SamplePoint(pu, pv)
	return age
}
