package gameplay

import (
	"context"
	"testing"

	"clipforge/internal/logging"
	"clipforge/internal/media"
	"clipforge/internal/testsupport"
)

const (
	testFrameWidth  = 160
	testFrameHeight = 90
)

func solidFrame(ts float64, r, g, b uint8) media.Frame {
	frame := media.Frame{
		Timestamp: ts,
		Width:     testFrameWidth,
		Height:    testFrameHeight,
		Pixels:    make([]byte, testFrameWidth*testFrameHeight*3),
	}
	for i := 0; i < len(frame.Pixels); i += 3 {
		frame.Pixels[i] = r
		frame.Pixels[i+1] = g
		frame.Pixels[i+2] = b
	}
	return frame
}

func paintRect(frame media.Frame, x0, y0, x1, y1 float64, r, g, b uint8) {
	px0 := int(x0 * float64(frame.Width))
	py0 := int(y0 * float64(frame.Height))
	px1 := int(x1 * float64(frame.Width))
	py1 := int(y1 * float64(frame.Height))
	for y := py0; y < py1; y++ {
		for x := px0; x < px1; x++ {
			idx := (y*frame.Width + x) * 3
			frame.Pixels[idx] = r
			frame.Pixels[idx+1] = g
			frame.Pixels[idx+2] = b
		}
	}
}

// hudFrame paints all three HUD regions with saturated UI colors over a
// gray background.
func hudFrame(ts float64) media.Frame {
	frame := solidFrame(ts, 40, 40, 40)
	paintRect(frame, 0.75, 0.75, 1.0, 1.0, 0, 0, 255)    // minimap: team blue
	paintRect(frame, 0.35, 0.85, 0.65, 1.0, 255, 200, 0) // abilities: gold
	paintRect(frame, 0.0, 0.85, 0.35, 1.0, 0, 255, 0)    // health: green
	return frame
}

func menuFrame(ts float64) media.Frame {
	return solidFrame(ts, 40, 40, 40)
}

func newVideo(t *testing.T, duration float64, frameFn func(ts float64) (media.Frame, error)) *testsupport.FakeMedia {
	t.Helper()
	m := testsupport.NewFakeMedia(duration, 4000)
	m.FrameFn = frameFn
	return m
}

func TestClassifyFullGameplay(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := newVideo(t, 120, func(ts float64) (media.Frame, error) {
		return hudFrame(ts), nil
	})

	result, err := New(cfg, logging.NewNop()).Classify(context.Background(), m, 120)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if result.Fallback {
		t.Fatal("expected observed intervals, got fallback")
	}
	if len(result.Intervals) != 1 {
		t.Fatalf("intervals = %d, want 1", len(result.Intervals))
	}
	iv := result.Intervals[0]
	if iv.Start != 0 || iv.End != 120 {
		t.Fatalf("interval = [%f, %f], want [0, 120]", iv.Start, iv.End)
	}
	if iv.Confidence <= FallbackConfidence {
		t.Fatalf("confidence %f should exceed the fallback tier", iv.Confidence)
	}
}

func TestClassifyGameplayPrefixOnly(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := newVideo(t, 120, func(ts float64) (media.Frame, error) {
		if ts < 40 {
			return hudFrame(ts), nil
		}
		return menuFrame(ts), nil
	})

	result, err := New(cfg, logging.NewNop()).Classify(context.Background(), m, 120)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if result.Fallback {
		t.Fatal("expected observed intervals, got fallback")
	}
	if len(result.Intervals) != 1 {
		t.Fatalf("intervals = %d, want 1", len(result.Intervals))
	}
	iv := result.Intervals[0]
	if iv.Start != 0 || iv.End != 40 {
		t.Fatalf("interval = [%f, %f], want [0, 40]", iv.Start, iv.End)
	}
}

func TestClassifyBridgesShortGaps(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := newVideo(t, 120, func(ts float64) (media.Frame, error) {
		if ts == 50 {
			return menuFrame(ts), nil
		}
		return hudFrame(ts), nil
	})

	result, err := New(cfg, logging.NewNop()).Classify(context.Background(), m, 120)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if len(result.Intervals) != 1 {
		t.Fatalf("gap within bridge tolerance should merge, got %d intervals", len(result.Intervals))
	}
	iv := result.Intervals[0]
	if iv.Start != 0 || iv.End != 120 {
		t.Fatalf("interval = [%f, %f], want [0, 120]", iv.Start, iv.End)
	}
}

func TestClassifyDropsShortSpans(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := newVideo(t, 120, func(ts float64) (media.Frame, error) {
		if ts == 60 {
			return hudFrame(ts), nil
		}
		return menuFrame(ts), nil
	})

	result, err := New(cfg, logging.NewNop()).Classify(context.Background(), m, 120)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if !result.Fallback {
		t.Fatal("expected fallback after the only span was dropped")
	}
	if len(result.Intervals) != 1 {
		t.Fatalf("fallback intervals = %d, want 1", len(result.Intervals))
	}
	iv := result.Intervals[0]
	if iv.Start != 0 || iv.End != 120 || iv.Confidence != FallbackConfidence {
		t.Fatalf("fallback interval = %+v", iv)
	}
}

func TestClassifyUndecodableVideo(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := testsupport.NewFakeMedia(120, 4000) // no FrameFn

	result, err := New(cfg, logging.NewNop()).Classify(context.Background(), m, 120)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if !result.Fallback {
		t.Fatal("expected fallback for undecodable video")
	}
	if result.SampledFrames != 0 {
		t.Fatalf("SampledFrames = %d, want 0", result.SampledFrames)
	}
}

func TestClassifyCancelledContext(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := newVideo(t, 30, func(ts float64) (media.Frame, error) {
		return hudFrame(ts), nil
	})
	if _, err := New(cfg, logging.NewNop()).Classify(ctx, m, 30); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
