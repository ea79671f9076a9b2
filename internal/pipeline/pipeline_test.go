package pipeline

import (
	"testing"

	"nvt-replay-renderer/internal/capture"
	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/pixbuf"
)

func testConfig(w, h, stride int) *config.Config {
	cfg := &config.Config{
		CaptureDir: "/unused",
		Width:      w,
		Height:     h,
		Stride:     stride,
		Workers:    2,
	}
	cfg.Resolve(config.Flags{})
	return cfg
}

func syntheticFrame(w, h int) *capture.FrameSet {
	set := &capture.FrameSet{
		Color:  pixbuf.New(w, h),
		Depth:  pixbuf.New(w, h),
		Normal: pixbuf.New(w, h),
		Albedo: pixbuf.New(w, h),
		Motion: pixbuf.New(w, h),
	}
	set.Color.Fill(0.5, 0.5, 0.5, 1)
	// Packed depth ~0.6: keeps everything in front of the far plane.
	packed := uint32(0.6 * (1<<24 - 1))
	set.Depth.Fill(
		float64(packed&0xFF)/255,
		float64((packed>>8)&0xFF)/255,
		float64((packed>>16)&0xFF)/255,
		1,
	)
	// Neutral motion.
	mv := uint32(511) | uint32(511)<<10
	set.Motion.Fill(
		float64(mv&0xFF)/255,
		float64((mv>>8)&0xFF)/255,
		float64((mv>>16)&0xFF)/255,
		1,
	)
	return set
}

func TestRenderFrameDimensionsAndCounter(t *testing.T) {
	cfg := testConfig(32, 16, 2)
	p := New(cfg)
	set := syntheticFrame(32, 16)

	if p.Frame() != 0 || p.Parity() != 0 {
		t.Fatalf("fresh pipeline frame/parity = %d/%d, want 0/0", p.Frame(), p.Parity())
	}

	img := p.RenderFrame(set)
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Errorf("output = %dx%d, want display resolution 32x16", b.Dx(), b.Dy())
	}
	if p.Frame() != 1 || p.Parity() != 1 {
		t.Errorf("after one frame, frame/parity = %d/%d, want 1/1", p.Frame(), p.Parity())
	}

	p.RenderFrame(set)
	if p.Parity() != 0 {
		t.Errorf("parity after two frames = %d, want role repeat of frame 0", p.Parity())
	}
}

func TestRenderFrameRepeats(t *testing.T) {
	cfg := testConfig(16, 16, 1)
	p := New(cfg)
	set := syntheticFrame(16, 16)

	// Several frames so history, variance clip and parity all cycle.
	for i := 0; i < 5; i++ {
		img := p.RenderFrame(set)
		if len(img.Pix) != 16*16*4 {
			t.Fatalf("frame %d: pixel count = %d, want %d", i, len(img.Pix), 16*16*4)
		}
	}
}

func TestRenderFrameConvergesUnderStaticInput(t *testing.T) {
	cfg := testConfig(16, 16, 1)
	p := New(cfg)
	set := syntheticFrame(16, 16)

	var prev, cur []uint8
	for i := 0; i < 30; i++ {
		img := p.RenderFrame(set)
		prev = cur
		cur = append([]uint8(nil), img.Pix...)
	}

	// With static input and zero motion, consecutive frames must settle
	// to within a couple of quantization steps per channel.
	for i := range cur {
		d := int(cur[i]) - int(prev[i])
		if d < -2 || d > 2 {
			t.Fatalf("static input still changing at byte %d: %d vs %d", i, prev[i], cur[i])
		}
	}
}

func TestDownsample(t *testing.T) {
	src := pixbuf.New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, float64(x), float64(y), 0, 1)
		}
	}

	dst := downsample(src, 2)
	if dst.Width != 2 || dst.Height != 2 {
		t.Fatalf("downsampled size = %dx%d, want 2x2", dst.Width, dst.Height)
	}
	r, g, _, _ := dst.At(1, 1)
	if r != 2 || g != 2 {
		t.Errorf("texel (1,1) = (%v, %v), want point sample (2, 2)", r, g)
	}

	if got := downsample(src, 1); got != src {
		t.Error("stride 1 should pass the buffer through")
	}
}
