package gbuffer

import (
	"math"
	"testing"
)

func motionBytes(qx, qy uint32) (r, g, b float64) {
	packed := qx | qy<<10
	r = float64(packed&0xFF) / 255
	g = float64((packed>>8)&0xFF) / 255
	b = float64((packed>>16)&0xFF) / 255
	return r, g, b
}

func TestDecodeMotionNeutral(t *testing.T) {
	r, g, b := motionBytes(511, 511)
	du, dv := DecodeMotion(r, g, b)
	if du != 0 || dv != 0 {
		t.Errorf("neutral decode = (%v, %v), want (0, 0)", du, dv)
	}
}

func TestDecodeMotionMonotonic(t *testing.T) {
	// Magnitude must not decrease as the quantized value moves away from
	// the neutral point, in either direction.
	prev := 0.0
	for q := uint32(511); q <= 1023; q++ {
		r, g, b := motionBytes(q, 511)
		du, _ := DecodeMotion(r, g, b)
		if mag := math.Abs(du); mag < prev {
			t.Fatalf("magnitude decreased at q=%d: %v < %v", q, mag, prev)
		} else {
			prev = mag
		}
	}
	prev = 0.0
	for q := 511; q >= 0; q-- {
		r, g, b := motionBytes(uint32(q), 511)
		du, _ := DecodeMotion(r, g, b)
		if mag := math.Abs(du); mag < prev {
			t.Fatalf("magnitude decreased at q=%d: %v < %v", q, mag, prev)
		} else {
			prev = mag
		}
	}
}

func TestDecodeMotionSign(t *testing.T) {
	r, g, b := motionBytes(1023, 0)
	du, dv := DecodeMotion(r, g, b)
	if du <= 0 {
		t.Errorf("du at q=1023 is %v, want positive", du)
	}
	if dv >= 0 {
		t.Errorf("dv at q=0 is %v, want negative", dv)
	}
}
