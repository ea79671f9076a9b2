package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	cfg := Config{CaptureDir: "/cap"}
	cfg.Resolve(Flags{})

	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Errorf("resolution = %dx%d, want %dx%d", cfg.Width, cfg.Height, DefaultWidth, DefaultHeight)
	}
	if cfg.Stride != 1 {
		t.Errorf("Stride = %d, want 1", cfg.Stride)
	}
	if cfg.SequenceLen != DefaultSequenceLen {
		t.Errorf("SequenceLen = %d, want %d", cfg.SequenceLen, DefaultSequenceLen)
	}
	if cfg.Frames != cfg.SequenceLen {
		t.Errorf("Frames = %d, want one full sequence %d", cfg.Frames, cfg.SequenceLen)
	}
	if cfg.FrameDelay != DefaultFrameDelay {
		t.Errorf("FrameDelay = %d, want %d", cfg.FrameDelay, DefaultFrameDelay)
	}
	if cfg.ColorPrefix != "color_input_0_" {
		t.Errorf("ColorPrefix = %q", cfg.ColorPrefix)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want >= 1", cfg.Workers)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{CaptureDir: "/a", Frames: 10, Stride: 2}
	cfg.Resolve(Flags{CaptureDir: "/b", Frames: 5, Workers: 3})

	if cfg.CaptureDir != "/b" {
		t.Errorf("CaptureDir = %q, want /b", cfg.CaptureDir)
	}
	if cfg.Frames != 5 {
		t.Errorf("Frames = %d, want 5", cfg.Frames)
	}
	if cfg.Stride != 2 {
		t.Errorf("Stride = %d, want kept value 2", cfg.Stride)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
}

func TestWorkingResolution(t *testing.T) {
	cfg := Config{CaptureDir: "/cap", Width: 1920, Height: 864, Stride: 2}
	cfg.Resolve(Flags{})

	if got := cfg.WorkingWidth(); got != 960 {
		t.Errorf("WorkingWidth = %d, want 960", got)
	}
	if got := cfg.WorkingHeight(); got != 432 {
		t.Errorf("WorkingHeight = %d, want 432", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"capture_dir": "/data/cap", "stride": 2, "frames": 60}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CaptureDir != "/data/cap" || cfg.Stride != 2 || cfg.Frames != 60 {
		t.Errorf("loaded config = %+v", cfg)
	}
}

func TestLoadBadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("malformed config loaded without error")
	}
}
