package main

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"nvt-replay-renderer/internal/capture"
	"nvt-replay-renderer/internal/gbuffer"
	"nvt-replay-renderer/internal/pixbuf"
)

func inspectFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing frame index argument")
	}
	frame, err := strconv.Atoi(ctx.Args().First())
	if err != nil || frame < 0 {
		return fmt.Errorf("invalid frame index: %s", ctx.Args().First())
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	src := capture.NewSource(cfg)
	set := src.LoadFrame(frame)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Channel", "Min", "Max", "Mean"})
	for _, row := range []struct {
		name string
		buf  *pixbuf.Buffer
	}{
		{"color", set.Color},
		{"depth (packed)", set.Depth},
		{"normal", set.Normal},
		{"albedo", set.Albedo},
		{"motion (packed)", set.Motion},
	} {
		mn, mx, mean := channelStats(row.buf)
		table.Append([]string{
			row.name,
			fmt.Sprintf("%.4f", mn),
			fmt.Sprintf("%.4f", mx),
			fmt.Sprintf("%.4f", mean),
		})
	}

	depth := gbuffer.ReconstructDepth(set.Depth)
	sky := 0
	for _, v := range depth.V {
		if gbuffer.IsSky(float64(v)) {
			sky++
		}
	}
	table.SetFooter([]string{"", "", "sky fraction",
		fmt.Sprintf("%.1f %%", 100*float64(sky)/float64(len(depth.V)))})

	table.Render()
	logger.Noticef("frame %d channel statistics\n%s", frame, buf.String())
	return nil
}

func channelStats(b *pixbuf.Buffer) (mn, mx, mean float64) {
	mn, mx = 1, 0
	var sum float64
	for _, v := range b.Pix {
		f := float64(v)
		if f < mn {
			mn = f
		}
		if f > mx {
			mx = f
		}
		sum += f
	}
	if len(b.Pix) > 0 {
		mean = sum / float64(len(b.Pix))
	}
	return mn, mx, mean
}
