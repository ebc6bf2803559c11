package eventtext

import (
	"context"
	"errors"
	"testing"

	"clipforge/internal/gameplay"
	"clipforge/internal/logging"
	"clipforge/internal/media"
	"clipforge/internal/testsupport"
)

type fakeRecognizer struct {
	fn func(ts float64) (string, error)
}

func (r *fakeRecognizer) Recognize(_ context.Context, frame media.Frame) (string, error) {
	return r.fn(frame.Timestamp)
}

func blankFrame(ts float64) (media.Frame, error) {
	return media.Frame{Timestamp: ts, Width: 320, Height: 180, Pixels: make([]byte, 320*180*3)}, nil
}

func TestScanRecognizesAndDedups(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := testsupport.NewFakeMedia(120, 4000)
	m.FrameFn = blankFrame

	rec := &fakeRecognizer{fn: func(ts float64) (string, error) {
		switch ts {
		case 10, 12:
			return "You have slain an enemy", nil
		case 30:
			return "DOUBLE KILL", nil
		case 40:
			return "", errors.New("tesseract crashed")
		}
		return "", nil
	}}

	intervals := []gameplay.Interval{{Start: 0, End: 60, Confidence: 0.9}}
	events, err := New(cfg, logging.NewNop(), rec).Scan(context.Background(), m, intervals, 120)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2 (repeat sighting should dedup): %+v", len(events), events)
	}
	if events[0].Type != EventKill || events[0].Timestamp != 10 {
		t.Fatalf("first event = %+v, want kill at 10s", events[0])
	}
	if events[1].Type != EventMultiKill || events[1].Timestamp != 30 {
		t.Fatalf("second event = %+v, want multi_kill at 30s", events[1])
	}
	for _, ev := range events {
		if ev.Confidence != exactMatchConfidence {
			t.Fatalf("event confidence = %f, want %f", ev.Confidence, exactMatchConfidence)
		}
	}
}

func TestScanStaysInsideIntervals(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := testsupport.NewFakeMedia(120, 4000)
	m.FrameFn = blankFrame

	rec := &fakeRecognizer{fn: func(ts float64) (string, error) {
		if ts >= 70 {
			return "you have slain an enemy", nil
		}
		return "", nil
	}}

	intervals := []gameplay.Interval{{Start: 0, End: 60, Confidence: 0.9}}
	events, err := New(cfg, logging.NewNop(), rec).Scan(context.Background(), m, intervals, 120)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("events outside gameplay intervals leaked: %+v", events)
	}
}

func TestScanConfidenceFloor(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Events.ConfidenceFloor = 0.7

	m := testsupport.NewFakeMedia(60, 4000)
	m.FrameFn = blankFrame

	// Token-level match only, which scores below the raised floor.
	rec := &fakeRecognizer{fn: func(ts float64) (string, error) {
		if ts == 10 {
			return "kill streak double bonus", nil
		}
		return "", nil
	}}

	intervals := []gameplay.Interval{{Start: 0, End: 60, Confidence: 0.9}}
	events, err := New(cfg, logging.NewNop(), rec).Scan(context.Background(), m, intervals, 60)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("sub-floor events kept: %+v", events)
	}
}

func TestScanNilRecognizer(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := testsupport.NewFakeMedia(60, 4000)

	intervals := []gameplay.Interval{{Start: 0, End: 60, Confidence: 0.9}}
	events, err := New(cfg, logging.NewNop(), nil).Scan(context.Background(), m, intervals, 60)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if events != nil {
		t.Fatalf("disabled recognizer returned events: %+v", events)
	}
}

func TestScanSkipsUnreadableFrames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := testsupport.NewFakeMedia(60, 4000) // no FrameFn: every frame degraded

	rec := &fakeRecognizer{fn: func(ts float64) (string, error) {
		return "you have slain an enemy", nil
	}}

	intervals := []gameplay.Interval{{Start: 0, End: 60, Confidence: 0.9}}
	events, err := New(cfg, logging.NewNop(), rec).Scan(context.Background(), m, intervals, 60)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("events from unreadable frames: %+v", events)
	}
}
