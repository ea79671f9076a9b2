package denoise

import "testing"

func TestPingPongRolesAlternate(t *testing.T) {
	p := NewPingPong(2, 2)

	for frame := 0; frame < 6; frame++ {
		parity := frame & 1
		r, w := p.Read(parity), p.Write(parity)
		if r == w {
			t.Fatalf("frame %d: read and write resolve to the same buffer", frame)
		}
	}
}

func TestPingPongRolesRepeatEveryTwoFrames(t *testing.T) {
	p := NewPingPong(2, 2)

	for frame := 0; frame < 4; frame++ {
		parity := frame & 1
		if p.Read(parity) != p.Read((frame+2)&1) {
			t.Fatalf("frame %d: read role differs from frame %d", frame, frame+2)
		}
		if p.Write(parity) != p.Write((frame+2)&1) {
			t.Fatalf("frame %d: write role differs from frame %d", frame, frame+2)
		}
	}
}

func TestPingPongWriteBecomesNextRead(t *testing.T) {
	p := NewPingPong(2, 2)

	for frame := 0; frame < 4; frame++ {
		if p.Write(frame&1) != p.Read((frame+1)&1) {
			t.Fatalf("frame %d: this frame's write is not the next frame's read", frame)
		}
	}
}
