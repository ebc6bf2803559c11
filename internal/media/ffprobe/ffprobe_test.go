package ffprobe

import (
	"math"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", Width: 1920, Height: 1080, FrameRate: "60/1"},
			{CodecType: "audio"},
			{CodecType: "audio"},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
		},
	}
	video, ok := result.VideoStream()
	if !ok {
		t.Fatal("expected a video stream")
	}
	if video.Width != 1920 || video.Height != 1080 {
		t.Fatalf("unexpected dimensions: %dx%d", video.Width, video.Height)
	}
	if fps := video.FrameRateValue(); fps != 60 {
		t.Fatalf("unexpected frame rate: %v", fps)
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if _, ok := result.VideoStream(); ok {
		t.Fatal("expected no video stream")
	}
	if (Stream{FrameRate: "0/0"}).FrameRateValue() != 0 {
		t.Fatal("expected zero frame rate for degenerate ratio")
	}
}
