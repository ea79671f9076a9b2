package capture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nvt-replay-renderer/internal/config"
	"nvt-replay-renderer/internal/log"
	"nvt-replay-renderer/internal/pixbuf"
)

var logger = log.New("capture")

// FrameSet holds the five captured channels of one frame, all at the
// capture resolution.
type FrameSet struct {
	Color  *pixbuf.Buffer
	Depth  *pixbuf.Buffer
	Normal *pixbuf.Buffer
	Albedo *pixbuf.Buffer
	Motion *pixbuf.Buffer
}

// Source loads captured frame channels from a directory of numbered
// dumps. Frame indices past the sequence length wrap around, so a short
// capture can drive an arbitrarily long replay.
type Source struct {
	dir      string
	width    int
	height   int
	seqLen   int
	prefixes [5]string
}

// NewSource builds a Source from the resolved configuration.
func NewSource(cfg *config.Config) *Source {
	return &Source{
		dir:    cfg.CaptureDir,
		width:  cfg.Width,
		height: cfg.Height,
		seqLen: cfg.SequenceLen,
		prefixes: [5]string{
			cfg.ColorPrefix,
			cfg.DepthPrefix,
			cfg.NormalPrefix,
			cfg.AlbedoPrefix,
			cfg.MotionPrefix,
		},
	}
}

// ChannelPath returns the on-disk path of one channel of one frame,
// after sequence wrapping.
func (s *Source) ChannelPath(prefix string, frame int) string {
	idx := frame
	if s.seqLen > 0 {
		idx = frame % s.seqLen
	}
	return filepath.Join(s.dir, fmt.Sprintf("%s%04d.raw", prefix, idx))
}

// LoadFrame loads all five channels of one frame. A missing or unreadable
// channel file degrades to a zero-filled buffer with a logged warning, so
// a capture with gaps still replays end to end.
func (s *Source) LoadFrame(frame int) *FrameSet {
	return &FrameSet{
		Color:  s.loadChannel(s.prefixes[0], frame),
		Depth:  s.loadChannel(s.prefixes[1], frame),
		Normal: s.loadChannel(s.prefixes[2], frame),
		Albedo: s.loadChannel(s.prefixes[3], frame),
		Motion: s.loadChannel(s.prefixes[4], frame),
	}
}

func (s *Source) loadChannel(prefix string, frame int) *pixbuf.Buffer {
	path := s.ChannelPath(prefix, frame)
	buf, err := LoadChannel(path, s.width, s.height)
	if err == nil {
		return buf
	}

	// Older capture tooling exported .tga instead of headerless .raw.
	if errors.Is(err, os.ErrNotExist) {
		alt := strings.TrimSuffix(path, ".raw") + ".tga"
		if buf, altErr := LoadChannel(alt, s.width, s.height); altErr == nil {
			return buf
		}
		logger.Warningf("frame %d: missing %s; using zero buffer", frame, filepath.Base(path))
	} else {
		logger.Warningf("frame %d: %v; using zero buffer", frame, err)
	}
	return pixbuf.New(s.width, s.height)
}
