package ffmpegsrc

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/media"
	"clipforge/internal/media/ffprobe"
	"clipforge/internal/services"
)

// Source is a media.Handle backed by ffmpeg shell-outs.
type Source struct {
	path       string
	ffmpeg     string
	duration   float64
	width      int
	height     int
	sampleRate int
	hasAudio   bool
	hasVideo   bool
	logger     *slog.Logger
}

// Open inspects the file with ffprobe and returns a handle over it.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, path string) (*Source, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrValidation, "media", "open", "media path is empty", nil)
	}

	probe, err := ffprobe.Inspect(ctx, cfg.FFprobeBinary(), path)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "media", "inspect", "failed to inspect media with ffprobe", err)
	}

	duration := probe.DurationSeconds()
	if math.IsNaN(duration) || duration <= 0 {
		return nil, services.Wrap(services.ErrValidation, "media", "inspect", "container reports no duration", nil)
	}

	src := &Source{
		path:       path,
		ffmpeg:     cfg.FFmpegBinary(),
		duration:   duration,
		sampleRate: cfg.Audio.SampleRate,
		hasAudio:   probe.AudioStreamCount() > 0,
		logger:     logging.NewComponentLogger(logger, "media"),
	}
	if video, ok := probe.VideoStream(); ok {
		src.hasVideo = true
		src.width = video.Width
		src.height = video.Height
	}
	if !src.hasAudio {
		src.logger.Warn("no audio stream in container; audio analysis will be skipped",
			logging.String(logging.FieldSource, path))
	}
	return src, nil
}

// Duration reports the container duration in seconds.
func (s *Source) Duration() float64 {
	return s.duration
}

// AudioSamples decodes the mono PCM covering [start, end).
func (s *Source) AudioSamples(ctx context.Context, start, end float64) ([]float64, int, error) {
	if !s.hasAudio {
		return nil, 0, services.Wrap(services.ErrDegradedInput, "media", "audio decode", "no decodable audio track", nil)
	}
	if end > s.duration {
		end = s.duration
	}
	if start < 0 {
		start = 0
	}
	if end <= start {
		return nil, s.sampleRate, nil
	}

	args := []string{
		"-v", "error", "-nostdin",
		"-ss", formatSeconds(start),
		"-t", formatSeconds(end - start),
		"-i", s.path,
		"-map", "0:a:0",
		"-ac", "1",
		"-ar", strconv.Itoa(s.sampleRate),
		"-f", "s16le",
		"-",
	}
	raw, err := s.run(ctx, args)
	if err != nil {
		return nil, 0, services.Wrap(services.ErrDegradedInput, "media", "audio decode", "ffmpeg audio decode failed", err)
	}

	samples := make([]float64, len(raw)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		samples[i] = float64(v) / 32768.0
	}
	return samples, s.sampleRate, nil
}

// FrameAt extracts the frame nearest the given timestamp as RGB24.
func (s *Source) FrameAt(ctx context.Context, timestamp float64) (media.Frame, error) {
	if !s.hasVideo || s.width <= 0 || s.height <= 0 {
		return media.Frame{}, services.Wrap(services.ErrDegradedInput, "media", "frame decode", "no decodable video track", nil)
	}
	if timestamp < 0 {
		timestamp = 0
	}
	if timestamp > s.duration {
		timestamp = s.duration
	}

	args := []string{
		"-v", "error", "-nostdin",
		"-ss", formatSeconds(timestamp),
		"-i", s.path,
		"-frames:v", "1",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-",
	}
	raw, err := s.run(ctx, args)
	if err != nil {
		return media.Frame{}, services.Wrap(services.ErrDegradedInput, "media", "frame decode", fmt.Sprintf("ffmpeg frame decode failed at %s", formatSeconds(timestamp)), err)
	}
	want := s.width * s.height * 3
	if len(raw) < want {
		return media.Frame{}, services.Wrap(services.ErrDegradedInput, "media", "frame decode", fmt.Sprintf("short frame payload at %s: got %d bytes, want %d", formatSeconds(timestamp), len(raw), want), nil)
	}
	return media.Frame{
		Timestamp: timestamp,
		Width:     s.width,
		Height:    s.height,
		Pixels:    raw[:want],
	}, nil
}

func (s *Source) run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, s.ffmpeg, args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail := strings.TrimSpace(string(exitErr.Stderr))
			if detail != "" {
				return nil, fmt.Errorf("%w: %s", err, detail)
			}
		}
		return nil, err
	}
	return output, nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
