// Package pipeline wires the per-frame passes together and owns the
// cross-frame history state. Frames run strictly in order because each
// one feeds the next through the history buffers; within a frame the
// passes dispatch row bands across a worker pool.
package pipeline

import (
	"image"
	"sync"

	"nvt-replay-renderer/internal/capture"
	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/denoise"
	"nvt-replay-renderer/internal/fresnel"
	"nvt-replay-renderer/internal/gbuffer"
	"nvt-replay-renderer/internal/pixbuf"
	"nvt-replay-renderer/internal/raymarch"
)

// Pipeline holds the pass chain's persistent state: the camera, the two
// temporal stages' history buffers, and the frame counter whose parity
// selects history read/write roles.
type Pipeline struct {
	cfg     *config.Config
	cam     raymarch.Camera
	workers int
	frame   int

	stage1 *denoise.History
	stage2 *denoise.History

	// Transient per-frame buffers, reused across frames.
	marched *pixbuf.Buffer
	blend1  *pixbuf.Buffer
	smooth2 *pixbuf.Buffer
	fres    *pixbuf.Scalar
}

// New builds a pipeline for the resolved configuration.
func New(cfg *config.Config) *Pipeline {
	w, h := cfg.WorkingWidth(), cfg.WorkingHeight()
	return &Pipeline{
		cfg:     cfg,
		cam:     raymarch.NewCamera(w, h),
		workers: cfg.Workers,
		stage1:  denoise.NewHistory(w, h),
		stage2:  denoise.NewHistory(w, h),
		marched: pixbuf.New(w, h),
		blend1:  pixbuf.New(w, h),
		smooth2: pixbuf.New(w, h),
		fres:    pixbuf.NewScalar(w, h),
	}
}

// Frame returns the index of the next frame to render.
func (p *Pipeline) Frame() int { return p.frame }

// Parity returns the history parity the next frame will use.
func (p *Pipeline) Parity() int { return p.frame & 1 }

// RenderFrame runs the full pass chain on one captured frame set and
// returns the finished image at display resolution. The pass order and
// the history wiring are fixed: the first temporal stage's history color
// is the previous frame's bilateral output, and the bilateral reads the
// metadata the temporal stage wrote this same frame.
func (p *Pipeline) RenderFrame(set *capture.FrameSet) *image.NRGBA {
	par := p.Parity()
	h := p.cfg.WorkingHeight()

	color := downsample(set.Color, p.cfg.Stride)
	gb := gbuffer.Reconstruct(
		downsample(set.Depth, p.cfg.Stride),
		downsample(set.Normal, p.cfg.Stride),
		downsample(set.Albedo, p.cfg.Stride),
	)
	motion := gbuffer.DecodeMotionField(downsample(set.Motion, p.cfg.Stride))

	p.dispatch(h, func(y0, y1 int) {
		raymarch.Render(p.cam, color, gb.Depth, p.marched, y0, y1)
	})

	p.dispatch(h, func(y0, y1 int) {
		denoise.TemporalStage1(p.marched, motion, gb.Depth,
			p.stage1.Color.Read(par), p.stage1.Info.Read(par),
			p.blend1, p.stage1.Info.Write(par), y0, y1)
	})

	// The bilateral writes straight into the stage-1 history color
	// target, which becomes the temporal history after the parity flip.
	p.dispatch(h, func(y0, y1 int) {
		denoise.SpatialBilateral(p.blend1, p.stage1.Info.Write(par), gb.Depth,
			p.stage1.Color.Write(par), y0, y1)
	})

	p.dispatch(h, func(y0, y1 int) {
		denoise.SpatialGaussian(p.stage1.Color.Write(par), p.smooth2, y0, y1)
	})

	p.dispatch(h, func(y0, y1 int) {
		fresnel.Estimate(p.cam, gb.Depth, p.fres, y0, y1)
	})

	p.dispatch(h, func(y0, y1 int) {
		denoise.TemporalStage2(p.smooth2, motion, gb.Depth, p.fres,
			p.stage2.Color.Read(par), p.stage2.Info.Read(par),
			p.stage2.Color.Write(par), p.stage2.Info.Write(par), y0, y1)
	})

	final := p.stage2.Color.Write(par).ToNRGBA()
	p.frame++

	return upscale(final, p.cfg.Width, p.cfg.Height)
}

// dispatch splits rows [0, h) into bands and runs fn on the worker pool,
// blocking until the whole grid is done.
func (p *Pipeline) dispatch(h int, fn func(y0, y1 int)) {
	workers := p.workers
	if workers < 1 {
		workers = 1
	}
	band := (h + workers - 1) / workers
	var wg sync.WaitGroup
	for y := 0; y < h; y += band {
		y1 := y + band
		if y1 > h {
			y1 = h
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(y, y1)
	}
	wg.Wait()
}
