package eventtext

import (
	"context"
	"log/slog"
	"math"

	"clipforge/internal/config"
	"clipforge/internal/gameplay"
	"clipforge/internal/logging"
	"clipforge/internal/media"
	"clipforge/internal/services"
)

// Announcement text renders in the top-left quadrant for the layouts the
// classifier targets.
var announcementRegion = struct {
	left, top, right, bottom float64
}{0.0, 0.0, 0.25, 0.15}

// Scanner samples frames inside gameplay intervals and reads announcement
// text from them.
type Scanner struct {
	cfg        *config.Config
	logger     *slog.Logger
	recognizer Recognizer
}

// New constructs a Scanner. A nil recognizer disables scanning; Scan then
// returns no events without touching the source.
func New(cfg *config.Config, logger *slog.Logger, recognizer Recognizer) *Scanner {
	return &Scanner{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "eventtext"),
		recognizer: recognizer,
	}
}

// Scan walks the gameplay intervals at the configured stride and returns the
// recognized events in timestamp order. Unreadable frames and recognizer
// failures are skipped; only context cancellation aborts the scan.
func (s *Scanner) Scan(ctx context.Context, src media.Handle, intervals []gameplay.Interval, analyzed float64) ([]Event, error) {
	if s.recognizer == nil {
		s.logger.Info("text recognition disabled")
		return nil, nil
	}
	if analyzed <= 0 {
		analyzed = src.Duration()
	}

	stride := s.cfg.Events.FrameStrideSeconds
	floor := s.cfg.Events.ConfidenceFloor

	var events []Event
	lastSeen := make(map[EventType]float64)
	toolFailures := 0

	for _, iv := range intervals {
		end := math.Min(iv.End, analyzed)
		for ts := iv.Start; ts < end; ts += stride {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			frame, err := src.FrameAt(ctx, ts)
			if err != nil {
				if services.Degraded(err) {
					continue
				}
				return nil, err
			}

			crop := frame.Crop(announcementRegion.left, announcementRegion.top,
				announcementRegion.right, announcementRegion.bottom)
			raw, err := s.recognizer.Recognize(ctx, crop)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				toolFailures++
				continue
			}

			text := normalizeText(raw)
			if text == "" {
				continue
			}
			eventType, confidence, ok := classifyText(text)
			if !ok || confidence < floor {
				continue
			}
			// The same announcement stays on screen across several strides;
			// keep only the first sighting.
			if prev, seen := lastSeen[eventType]; seen && ts-prev < 2*stride {
				lastSeen[eventType] = ts
				continue
			}
			lastSeen[eventType] = ts
			events = append(events, Event{
				Timestamp:  ts,
				Type:       eventType,
				Confidence: confidence,
				RawText:    text,
			})
		}
	}

	if toolFailures > 0 {
		s.logger.Warn("some frames failed text recognition",
			logging.Int("failures", toolFailures))
	}
	s.logger.Info("event scan complete", logging.Int("events", len(events)))
	return events, nil
}
