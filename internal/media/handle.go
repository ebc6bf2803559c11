package media

import (
	"context"
	"fmt"
)

// Frame is one decoded video frame in packed RGB24 order.
type Frame struct {
	Timestamp float64
	Width     int
	Height    int
	// Pixels holds Width*Height*3 bytes, rows top to bottom.
	Pixels []byte
}

// RGBAt returns the pixel at (x, y). Out-of-bounds coordinates return zeros.
func (f Frame) RGBAt(x, y int) (r, g, b uint8) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0, 0, 0
	}
	idx := (y*f.Width + x) * 3
	if idx+2 >= len(f.Pixels) {
		return 0, 0, 0
	}
	return f.Pixels[idx], f.Pixels[idx+1], f.Pixels[idx+2]
}

// Crop returns the sub-frame covered by the normalized rectangle
// [x0,y0)-(x1,y1), coordinates in 0..1. The returned frame shares no pixel
// storage with the receiver.
func (f Frame) Crop(x0, y0, x1, y1 float64) Frame {
	px0 := clampInt(int(x0*float64(f.Width)), 0, f.Width)
	py0 := clampInt(int(y0*float64(f.Height)), 0, f.Height)
	px1 := clampInt(int(x1*float64(f.Width)), px0, f.Width)
	py1 := clampInt(int(y1*float64(f.Height)), py0, f.Height)

	width := px1 - px0
	height := py1 - py0
	out := Frame{Timestamp: f.Timestamp, Width: width, Height: height}
	if width <= 0 || height <= 0 {
		return out
	}
	out.Pixels = make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		srcOff := ((py0+y)*f.Width + px0) * 3
		dstOff := y * width * 3
		copy(out.Pixels[dstOff:dstOff+width*3], f.Pixels[srcOff:srcOff+width*3])
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Handle is a read-only view of one media file. Implementations must be safe
// for concurrent readers: the audio analyzer and the gameplay classifier run
// in parallel over the same handle.
type Handle interface {
	// Duration reports the container duration in seconds.
	Duration() float64
	// AudioSamples returns mono samples in [-1, 1] covering [start, end)
	// along with the sample rate. A handle without a decodable audio track
	// returns an error marked services.ErrDegradedInput.
	AudioSamples(ctx context.Context, start, end float64) ([]float64, int, error)
	// FrameAt returns the decoded frame nearest the given timestamp. Decode
	// failures for individual frames are reported as degraded input.
	FrameAt(ctx context.Context, timestamp float64) (Frame, error)
}

// ClampRange trims [start, end) to the handle's duration and reports whether
// anything remains.
func ClampRange(h Handle, start, end float64) (float64, float64, bool) {
	duration := h.Duration()
	if start < 0 {
		start = 0
	}
	if end > duration {
		end = duration
	}
	return start, end, end > start
}

// RangeLabel formats a time range for log attributes.
func RangeLabel(start, end float64) string {
	return fmt.Sprintf("%.1fs-%.1fs", start, end)
}
