package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/replay"
)

func renderSequence(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	logger.Noticef("rendering %d frames at %dx%d (working %dx%d, %d workers)",
		cfg.Frames, cfg.Width, cfg.Height, cfg.WorkingWidth(), cfg.WorkingHeight(), cfg.Workers)

	start := time.Now()
	results := replay.Run(cfg)
	elapsed := time.Since(start)

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := replay.WriteManifest(manifestPath, results); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	displayRunStats(results, elapsed)
	return nil
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	var cfg config.Config
	if path := ctx.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.Resolve(config.Flags{
		CaptureDir: ctx.String("capture-dir"),
		OutputDir:  ctx.String("out"),
		Frames:     ctx.Int("frames"),
		Stride:     ctx.Int("stride"),
		Workers:    ctx.Int("workers"),
	})
	return &cfg, nil
}

func displayRunStats(results []replay.Result, elapsed time.Duration) {
	rendered, failed := 0, 0
	for _, r := range results {
		if r.Success {
			rendered++
		} else {
			failed++
		}
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frames", "Rendered", "Failed", "Total time", "Avg/frame"})
	table.Append([]string{
		fmt.Sprintf("%d", len(results)),
		fmt.Sprintf("%d", rendered),
		fmt.Sprintf("%d", failed),
		fmt.Sprintf("%s", elapsed.Round(time.Millisecond)),
		fmt.Sprintf("%s", (elapsed / time.Duration(max(len(results), 1))).Round(time.Millisecond)),
	})
	table.Render()
	logger.Noticef("replay statistics\n%s", buf.String())

	for _, r := range results {
		if !r.Success {
			logger.Warningf("frame %d failed: %s", r.Frame, r.Error)
		}
	}
}
