package gameplay

import (
	"context"
	"log/slog"
	"math"

	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/media"
	"clipforge/internal/services"
)

// Classifier samples frames and assembles gameplay intervals.
type Classifier struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs a Classifier. A nil logger silences it.
func New(cfg *config.Config, logger *slog.Logger) *Classifier {
	return &Classifier{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "gameplay"),
	}
}

// frameVerdict is one sampled frame's classification.
type frameVerdict struct {
	timestamp float64
	gameplay  bool
	// confidence is the mean UI fraction of the matched regions, scaled by
	// how many of the three regions matched.
	confidence float64
}

// Classify samples the first analyzed seconds of the source at the
// configured stride. When no frame is decodable, or no span survives
// filtering, the result is a single full-range fallback interval.
func (c *Classifier) Classify(ctx context.Context, src media.Handle, analyzed float64) (Result, error) {
	if analyzed <= 0 {
		analyzed = src.Duration()
	}
	if analyzed <= 0 {
		return c.fallback(analyzed), nil
	}

	stride := c.cfg.HUD.FrameStrideSeconds
	verdicts := make([]frameVerdict, 0, int(analyzed/stride)+1)
	decoded := 0

	for ts := 0.0; ts < analyzed; ts += stride {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		frame, err := src.FrameAt(ctx, ts)
		if err != nil {
			if services.Degraded(err) {
				continue
			}
			return Result{}, err
		}
		decoded++
		verdicts = append(verdicts, c.classifyFrame(frame, ts))
	}

	if decoded == 0 {
		c.logger.Warn("video track not decodable; assuming gameplay throughout",
			logging.Float64("analyzed_seconds", analyzed))
		res := c.fallback(analyzed)
		res.SampledFrames = 0
		return res, nil
	}

	intervals := c.assembleIntervals(verdicts, analyzed)
	if len(intervals) == 0 {
		c.logger.Warn("no gameplay spans matched; falling back to full range",
			logging.Error(services.Wrap(services.ErrNoGameplay, "gameplay", "classify", "no HUD evidence in sampled frames", nil)),
			logging.Int("sampled_frames", decoded))
		res := c.fallback(analyzed)
		res.SampledFrames = decoded
		return res, nil
	}

	c.logger.Info("gameplay classification complete",
		logging.Int("sampled_frames", decoded),
		logging.Int("intervals", len(intervals)))

	return Result{Intervals: intervals, SampledFrames: decoded}, nil
}

func (c *Classifier) classifyFrame(frame media.Frame, ts float64) frameVerdict {
	matched := 0
	var fractionSum float64
	for _, region := range hudRegions {
		fraction := regionUIFraction(frame, region)
		if fraction > c.cfg.HUD.RegionMatchFraction {
			matched++
			fractionSum += fraction
		}
	}
	verdict := frameVerdict{timestamp: ts}
	if matched < c.cfg.HUD.MinMatchedRegions {
		return verdict
	}
	verdict.gameplay = true
	// Confidence blends region coverage with match strength, capped so a
	// single saturated region cannot saturate the whole verdict.
	strength := math.Min(fractionSum/float64(matched)/0.5, 1)
	verdict.confidence = float64(matched) / float64(len(hudRegions)) * (0.5 + 0.5*strength)
	return verdict
}

// assembleIntervals groups consecutive gameplay verdicts into spans, bridges
// short gaps, and drops spans below the minimum length.
func (c *Classifier) assembleIntervals(verdicts []frameVerdict, analyzed float64) []Interval {
	stride := c.cfg.HUD.FrameStrideSeconds

	var raw []Interval
	var current *Interval
	var confSum float64
	var confCount int

	flush := func() {
		if current == nil {
			return
		}
		current.Confidence = confSum / float64(confCount)
		raw = append(raw, *current)
		current = nil
		confSum, confCount = 0, 0
	}

	for _, v := range verdicts {
		if !v.gameplay {
			flush()
			continue
		}
		end := math.Min(v.timestamp+stride, analyzed)
		if current == nil {
			current = &Interval{Start: v.timestamp, End: end}
		} else {
			current.End = end
		}
		confSum += v.confidence
		confCount++
	}
	flush()

	bridged := bridgeGaps(raw, c.cfg.HUD.GapBridgeSeconds)

	out := bridged[:0]
	for _, iv := range bridged {
		if iv.End-iv.Start >= c.cfg.HUD.MinSpanSeconds {
			out = append(out, iv)
		}
	}
	return out
}

// bridgeGaps merges adjacent intervals separated by at most maxGap seconds.
// The merged confidence is the length-weighted mean of the members.
func bridgeGaps(intervals []Interval, maxGap float64) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	out := []Interval{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &out[len(out)-1]
		if iv.Start-last.End > maxGap {
			out = append(out, iv)
			continue
		}
		lastLen := last.End - last.Start
		ivLen := iv.End - iv.Start
		last.Confidence = (last.Confidence*lastLen + iv.Confidence*ivLen) / (lastLen + ivLen)
		last.End = iv.End
	}
	return out
}

func (c *Classifier) fallback(analyzed float64) Result {
	if analyzed < 0 {
		analyzed = 0
	}
	return Result{
		Intervals: []Interval{{Start: 0, End: analyzed, Confidence: FallbackConfidence}},
		Fallback:  true,
	}
}
