package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and replay settings.
type Config struct {
	// Paths
	CaptureDir string `json:"capture_dir"`
	OutputDir  string `json:"output_dir"`

	// Capture geometry
	Width  int `json:"width"`
	Height int `json:"height"`

	// Stride divides the capture resolution down to the working
	// resolution shared by the ray-march and denoise passes.
	Stride int `json:"stride"`

	// Sequence settings
	SequenceLen int `json:"sequence_len"`
	FrameDelay  int `json:"frame_delay"`
	Frames      int `json:"frames"`

	// Per-channel file prefixes inside CaptureDir.
	ColorPrefix  string `json:"color_prefix"`
	DepthPrefix  string `json:"depth_prefix"`
	NormalPrefix string `json:"normal_prefix"`
	AlbedoPrefix string `json:"albedo_prefix"`
	MotionPrefix string `json:"motion_prefix"`

	// Output settings
	Workers int `json:"workers"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	CaptureDir string
	OutputDir  string
	Frames     int
	Stride     int
	Workers    int
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.CaptureDir != "" {
		c.CaptureDir = flags.CaptureDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Stride > 0 {
		c.Stride = flags.Stride
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.CaptureDir == "" {
		c.CaptureDir = detectCaptureDir()
	}
	if c.OutputDir == "" {
		if c.CaptureDir != "" {
			c.OutputDir = filepath.Join(filepath.Dir(c.CaptureDir), "replay-out")
		} else {
			c.OutputDir = "replay-out"
		}
	}

	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Stride <= 0 {
		c.Stride = 1
	}
	if c.SequenceLen <= 0 {
		c.SequenceLen = DefaultSequenceLen
	}
	if c.FrameDelay <= 0 {
		c.FrameDelay = DefaultFrameDelay
	}
	if c.Frames <= 0 {
		c.Frames = c.SequenceLen
	}

	if c.ColorPrefix == "" {
		c.ColorPrefix = "color_input_0_"
	}
	if c.DepthPrefix == "" {
		c.DepthPrefix = "depth_input_0_"
	}
	if c.NormalPrefix == "" {
		c.NormalPrefix = "normal_input_0_"
	}
	if c.AlbedoPrefix == "" {
		c.AlbedoPrefix = "albedo_0_"
	}
	if c.MotionPrefix == "" {
		c.MotionPrefix = "mv_input_0_"
	}

	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// WorkingWidth returns the working (ray-march/denoise) resolution width.
func (c *Config) WorkingWidth() int {
	return c.Width / c.Stride
}

// WorkingHeight returns the working resolution height.
func (c *Config) WorkingHeight() int {
	return c.Height / c.Stride
}

func detectCaptureDir() string {
	// Try a capture directory next to the executable, then the cwd.
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir)} {
			if found := findCaptureIn(base); found != "" {
				return found
			}
		}
	}

	cwd, _ := os.Getwd()
	return findCaptureIn(cwd)
}

func findCaptureIn(base string) string {
	entries, err := os.ReadDir(base)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		// A capture directory is recognized by its first color frame.
		marker := filepath.Join(base, e.Name(), "color_input_0_0000.raw")
		if _, err := os.Stat(marker); err == nil {
			return filepath.Join(base, e.Name())
		}
	}
	return ""
}
