package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "github.com/ftrvxmtrx/tga"
	"github.com/urfave/cli"
	"golang.org/x/image/draw"
)

// generateCapture synthesizes a test capture sequence: a scrolling color
// gradient, a vertical 24-bit packed depth ramp, flat normals, a gray
// albedo and neutral motion vectors. Files are written bottom-up, the way
// real captures arrive.
func generateCapture(ctx *cli.Context) error {
	setupLogging(ctx)

	outDir := ctx.String("out")
	frames := ctx.Int("frames")
	w := ctx.Int("width")
	h := ctx.Int("height")

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	var pan *image.NRGBA
	if imgPath := ctx.String("image"); imgPath != "" {
		var err error
		pan, err = loadPanImage(imgPath, w+frames, h)
		if err != nil {
			return err
		}
	}

	normal := constantFrame(w, h, 128, 128, 255, 255)
	albedo := constantFrame(w, h, 204, 204, 204, 255)
	mr, mg, mb, ma := neutralMotionBytes()
	motion := constantFrame(w, h, mr, mg, mb, ma)
	depth := depthRampFrame(w, h)

	for i := 0; i < frames; i++ {
		var color []byte
		if pan != nil {
			color = panFrame(pan, w, h, i)
		} else {
			color = colorFrame(w, h, float64(i)/float64(frames))
		}
		channels := map[string][]byte{
			"color_input_0_":  color,
			"depth_input_0_":  depth,
			"normal_input_0_": normal,
			"albedo_0_":       albedo,
			"mv_input_0_":     motion,
		}
		for prefix, data := range channels {
			path := filepath.Join(outDir, fmt.Sprintf("%s%04d.raw", prefix, i))
			if err := os.WriteFile(path, data, 0644); err != nil {
				return err
			}
		}
		if i%10 == 0 {
			logger.Infof("generated frame %d", i)
		}
	}

	logger.Noticef("wrote %d synthetic frames to %s", frames, outDir)
	return nil
}

// colorFrame builds a scrolling gradient: red wraps with the horizontal
// position plus phase, green follows the vertical position.
func colorFrame(w, h int, t float64) []byte {
	data := make([]byte, w*h*4)
	for row := 0; row < h; row++ {
		// Rows are stored bottom-up.
		y := float64(h-1-row) / float64(h-1)
		for x := 0; x < w; x++ {
			r := float64(x)/float64(w-1) + t
			r -= float64(int(r))
			i := (row*w + x) * 4
			data[i] = byte(r*255 + 0.5)
			data[i+1] = byte(y*255 + 0.5)
			data[i+2] = 128
			data[i+3] = 255
		}
	}
	return data
}

// depthRampFrame packs a vertical depth ramp into the 24-bit layout.
func depthRampFrame(w, h int) []byte {
	data := make([]byte, w*h*4)
	for row := 0; row < h; row++ {
		y := float64(h-1-row) / float64(h-1)
		z := 0.001 + y*(1-0.001)
		packed := uint32(z * (1<<24 - 1))
		r := byte(packed & 0xFF)
		g := byte((packed >> 8) & 0xFF)
		b := byte((packed >> 16) & 0xFF)
		for x := 0; x < w; x++ {
			i := (row*w + x) * 4
			data[i] = r
			data[i+1] = g
			data[i+2] = b
			data[i+3] = 255
		}
	}
	return data
}

func constantFrame(w, h int, r, g, b, a byte) []byte {
	data := make([]byte, w*h*4)
	for i := 0; i < len(data); i += 4 {
		data[i] = r
		data[i+1] = g
		data[i+2] = b
		data[i+3] = a
	}
	return data
}

// loadPanImage decodes a source image and resizes it wider than a frame
// so successive frames can pan across it.
func loadPanImage(path string, w, h int) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gencapture: open %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("gencapture: decode %s: %w", path, err)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// panFrame cuts the i-th window out of the panning image, stored
// bottom-up like a real capture.
func panFrame(pan *image.NRGBA, w, h, i int) []byte {
	data := make([]byte, w*h*4)
	for row := 0; row < h; row++ {
		srcY := h - 1 - row
		src := pan.Pix[srcY*pan.Stride+i*4 : srcY*pan.Stride+(i+w)*4]
		copy(data[row*w*4:(row+1)*w*4], src)
	}
	return data
}

// neutralMotionBytes is the packed 24-bit value for zero motion: both
// 10-bit components at the 511 neutral point.
func neutralMotionBytes() (byte, byte, byte, byte) {
	packed := uint32(511) | uint32(511)<<10
	return byte(packed & 0xFF), byte((packed >> 8) & 0xFF), byte((packed >> 16) & 0xFF), 255
}
