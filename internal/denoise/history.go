// Package denoise implements the temporal-accumulation and spatial-filter
// stages that turn the noisy composited frame into a stable image.
package denoise

import "nvt-replay-renderer/internal/pixbuf"

// PingPong is a pair of physical buffers whose read/write roles alternate
// by frame parity. Within one frame a buffer is either only read (the
// previous frame's write) or only written, never both, so the passes need
// no locking.
type PingPong struct {
	bufs [2]*pixbuf.Buffer
}

// NewPingPong allocates both physical buffers zero-filled. A zero buffer
// means no usable history, which the depth-consistency check rejects on
// the first frame.
func NewPingPong(w, h int) *PingPong {
	return &PingPong{bufs: [2]*pixbuf.Buffer{pixbuf.New(w, h), pixbuf.New(w, h)}}
}

// Read returns the buffer holding the previous frame's write for the
// given parity.
func (p *PingPong) Read(parity int) *pixbuf.Buffer {
	return p.bufs[parity&1]
}

// Write returns this frame's write target for the given parity.
func (p *PingPong) Write(parity int) *pixbuf.Buffer {
	return p.bufs[(parity+1)&1]
}

// History bundles the per-stage persistent state: accumulated color and
// the info buffer carrying age, luminance second moment and the depth
// recorded at write time.
type History struct {
	Color *PingPong
	Info  *PingPong
}

// NewHistory allocates history state for one temporal stage.
func NewHistory(w, h int) *History {
	return &History{Color: NewPingPong(w, h), Info: NewPingPong(w, h)}
}
