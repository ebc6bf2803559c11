package testsupport

import (
	"context"
	"math"

	"clipforge/internal/media"
	"clipforge/internal/services"
)

// FakeMedia is an in-memory media.Handle for analyzer tests. Audio is a flat
// sample buffer painted with PaintTone; frames come from FrameFn.
type FakeMedia struct {
	DurationSec float64
	SampleRate  int
	Samples     []float64
	NoAudio     bool
	FrameFn     func(timestamp float64) (media.Frame, error)
}

// NewFakeMedia allocates a silent track of the given duration.
func NewFakeMedia(durationSec float64, sampleRate int) *FakeMedia {
	return &FakeMedia{
		DurationSec: durationSec,
		SampleRate:  sampleRate,
		Samples:     make([]float64, int(durationSec*float64(sampleRate))),
	}
}

// PaintTone fills [start, end) with an alternating-sign signal of the given
// amplitude, which has an RMS equal to the amplitude exactly.
func (m *FakeMedia) PaintTone(start, end, amplitude float64) {
	lo := int(start * float64(m.SampleRate))
	hi := int(end * float64(m.SampleRate))
	if lo < 0 {
		lo = 0
	}
	if hi > len(m.Samples) {
		hi = len(m.Samples)
	}
	for i := lo; i < hi; i++ {
		if i%2 == 0 {
			m.Samples[i] = amplitude
		} else {
			m.Samples[i] = -amplitude
		}
	}
}

// PaintBurstPattern alternates loud and quiet sub-chunks across [start, end)
// so the span registers as busy to the density heuristic.
func (m *FakeMedia) PaintBurstPattern(start, end, amplitude, chunkSec float64) {
	for t := start; t < end; t += 2 * chunkSec {
		m.PaintTone(t, math.Min(t+chunkSec, end), amplitude)
	}
}

func (m *FakeMedia) Duration() float64 { return m.DurationSec }

func (m *FakeMedia) AudioSamples(ctx context.Context, start, end float64) ([]float64, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if m.NoAudio {
		return nil, 0, services.Wrap(services.ErrDegradedInput, "media", "audio decode", "no decodable audio track", nil)
	}
	lo := int(start * float64(m.SampleRate))
	hi := int(end * float64(m.SampleRate))
	if lo < 0 {
		lo = 0
	}
	if hi > len(m.Samples) {
		hi = len(m.Samples)
	}
	if hi <= lo {
		return nil, m.SampleRate, nil
	}
	out := make([]float64, hi-lo)
	copy(out, m.Samples[lo:hi])
	return out, m.SampleRate, nil
}

func (m *FakeMedia) FrameAt(ctx context.Context, timestamp float64) (media.Frame, error) {
	if err := ctx.Err(); err != nil {
		return media.Frame{}, err
	}
	if m.FrameFn == nil {
		return media.Frame{}, services.Wrap(services.ErrDegradedInput, "media", "frame decode", "no decodable video track", nil)
	}
	return m.FrameFn(timestamp)
}
