// Package replay drives the pipeline over a captured sequence and writes
// the finished frames to disk.
package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"nvt-replay-renderer/internal/capture"
	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/log"
	"nvt-replay-renderer/internal/pipeline"
)

var logger = log.New("replay")

// Result holds the outcome of one rendered frame.
type Result struct {
	Frame   int
	Success bool
	Error   string
}

// Run replays the capture through the pipeline. Frames are rendered
// strictly in order — each one feeds the next through history state — so
// parallelism lives inside the pipeline's row dispatch, not here. A
// failing frame is recorded and the replay moves on.
func Run(cfg *config.Config) []Result {
	src := capture.NewSource(cfg)
	pipe := pipeline.New(cfg)
	results := make([]Result, cfg.Frames)

	var rendered atomic.Int64
	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				n := rendered.Load()
				if n > 0 {
					elapsed := time.Since(start).Seconds()
					logger.Noticef("[%d/%d] %.2f frames/sec", n, cfg.Frames, float64(n)/elapsed)
				}
			}
		}
	}()

	for frame := 0; frame < cfg.Frames; frame++ {
		results[frame] = renderOne(cfg, src, pipe, frame)
		rendered.Add(1)
	}
	close(done)

	return results
}

// renderOne loads, renders and encodes one frame. FrameDelay is a pacing
// divider: each capture frame is held for that many output frames, which
// gives the temporal stages time to accumulate history on it.
func renderOne(cfg *config.Config, src *capture.Source, pipe *pipeline.Pipeline, frame int) Result {
	captureIdx := frame
	if cfg.FrameDelay > 1 {
		captureIdx = frame / cfg.FrameDelay
	}
	set := src.LoadFrame(captureIdx)
	img := pipe.RenderFrame(set)

	outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("frame_%04d.webp", frame))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return Result{Frame: frame, Error: err.Error()}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return Result{Frame: frame, Error: err.Error()}
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return Result{Frame: frame, Error: fmt.Sprintf("WebP encode: %v", err)}
	}

	return Result{Frame: frame, Success: true}
}
