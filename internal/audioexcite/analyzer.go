package audioexcite

import (
	"context"
	"log/slog"
	"math"

	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/media"
	"clipforge/internal/services"
)

// fetchBlockSeconds bounds how much PCM is resident at once. Each fetch
// extends one window length past the block end so windows never straddle
// a block boundary.
const fetchBlockSeconds = 60.0

// baselineFloor keeps ratio math sane over near-silent stretches.
const baselineFloor = 1e-4

// subChunkSeconds is the sub-window resolution used for density counting.
const subChunkSeconds = 0.1

// Analyzer detects excitement candidates in the audio track.
type Analyzer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs an Analyzer. A nil logger silences it.
func New(cfg *config.Config, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "audioexcite"),
	}
}

// Analyze scans the track and pools candidates from all detection methods.
// The pool may contain overlapping candidates from different methods; the
// correlation engine is responsible for merging them.
func (a *Analyzer) Analyze(ctx context.Context, src media.Handle) (Result, error) {
	analyzed := src.Duration()
	if prefix := a.cfg.Clips.AnalysisPrefixSeconds; prefix > 0 && prefix < analyzed {
		analyzed = prefix
	}
	result := Result{AnalyzedSeconds: analyzed}
	if analyzed <= 0 {
		return result, nil
	}

	windows, err := a.collectWindows(ctx, src, analyzed)
	if err != nil {
		if services.Degraded(err) {
			a.logger.Warn("audio track not decodable; continuing without audio candidates",
				logging.Error(err))
			result.Degraded = true
			return result, nil
		}
		return Result{}, err
	}

	fillBaselines(windows, a.baselineWindowCount())

	pool := make([]Candidate, 0, 16)
	pool = append(pool, a.detectVolumeSpikes(windows)...)
	pool = append(pool, a.detectDensity(windows)...)
	pool = append(pool, a.detectTransitions(windows)...)

	if len(pool) < a.cfg.Audio.MinCandidates {
		fallback := a.periodicFallback(analyzed, a.cfg.Audio.MinCandidates-len(pool))
		pool = append(pool, fallback...)
		result.FallbackFired = len(fallback) > 0
	}

	a.logger.Info("audio analysis complete",
		logging.Float64("analyzed_seconds", analyzed),
		logging.Int("windows", len(windows)),
		logging.Int("candidates", len(pool)),
		logging.Bool("fallback_fired", result.FallbackFired))

	result.Candidates = pool
	return result, nil
}

func (a *Analyzer) baselineWindowCount() int {
	n := int(a.cfg.Audio.BaselineWindowSeconds / a.cfg.Audio.HopSeconds)
	if n < 1 {
		n = 1
	}
	return n
}

// collectWindows pulls PCM in bounded blocks and computes per-window
// features: overall RMS plus the count of abrupt sub-chunk level changes.
func (a *Analyzer) collectWindows(ctx context.Context, src media.Handle, analyzed float64) ([]featureWindow, error) {
	winLen := a.cfg.Audio.WindowSeconds
	hop := a.cfg.Audio.HopSeconds
	deltaRatio := a.cfg.Audio.DensityDeltaRatio

	var windows []featureWindow
	for blockStart := 0.0; blockStart < analyzed; blockStart += fetchBlockSeconds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blockEnd := math.Min(blockStart+fetchBlockSeconds, analyzed)
		fetchEnd := math.Min(blockEnd+winLen, analyzed)

		samples, rate, err := src.AudioSamples(ctx, blockStart, fetchEnd)
		if err != nil {
			return nil, err
		}
		if rate <= 0 {
			continue
		}

		winSamples := int(winLen * float64(rate))
		subSamples := int(subChunkSeconds * float64(rate))
		if winSamples <= 0 || subSamples <= 0 {
			continue
		}

		for t := blockStart; t < blockEnd-1e-9; t += hop {
			offset := int((t - blockStart) * float64(rate))
			if offset+winSamples > len(samples) {
				break
			}
			window := samples[offset : offset+winSamples]
			windows = append(windows, featureWindow{
				start:       t,
				rms:         rootMeanSquare(window),
				fluxChanges: countLevelChanges(window, subSamples, deltaRatio),
			})
		}
	}
	return windows, nil
}

// countLevelChanges counts sub-chunk boundaries where the RMS level moved
// by more than deltaRatio relative to the previous sub-chunk.
func countLevelChanges(window []float64, subSamples int, deltaRatio float64) int {
	changes := 0
	prev := -1.0
	for off := 0; off+subSamples <= len(window); off += subSamples {
		cur := rootMeanSquare(window[off : off+subSamples])
		if prev >= 0 {
			ref := math.Max(prev, baselineFloor)
			if math.Abs(cur-prev)/ref > deltaRatio {
				changes++
			}
		}
		prev = cur
	}
	return changes
}

// fillBaselines assigns each window the mean RMS of up to count trailing
// windows. The first window seeds its baseline from its own RMS so the
// opening seconds cannot self-trigger a spike.
func fillBaselines(windows []featureWindow, count int) {
	for i := range windows {
		lo := i - count
		if lo < 0 {
			lo = 0
		}
		if lo == i {
			windows[i].baseline = math.Max(windows[i].rms, baselineFloor)
			continue
		}
		var sum float64
		for j := lo; j < i; j++ {
			sum += windows[j].rms
		}
		windows[i].baseline = math.Max(sum/float64(i-lo), baselineFloor)
	}
}

func (a *Analyzer) detectVolumeSpikes(windows []featureWindow) []Candidate {
	mult := a.cfg.Audio.SpikeMultiplier
	winLen := a.cfg.Audio.WindowSeconds

	var out []Candidate
	for _, w := range windows {
		ratio := w.rms / w.baseline
		if ratio < mult {
			continue
		}
		out = append(out, Candidate{
			Start:  w.start,
			End:    w.start + winLen,
			Score:  clamp01(ratio / (2 * mult)),
			Method: MethodVolumeSpike,
		})
	}
	return out
}

func (a *Analyzer) detectDensity(windows []featureWindow) []Candidate {
	minChanges := a.cfg.Audio.DensityMinChanges
	winLen := a.cfg.Audio.WindowSeconds

	var out []Candidate
	for _, w := range windows {
		if w.fluxChanges < minChanges {
			continue
		}
		out = append(out, Candidate{
			Start:  w.start,
			End:    w.start + winLen,
			Score:  clamp01(float64(w.fluxChanges) / float64(2*minChanges)),
			Method: MethodDensity,
		})
	}
	return out
}

// detectTransitions flags a window whose level jumps from quiet to loud
// relative to the rolling baseline across consecutive windows.
func (a *Analyzer) detectTransitions(windows []featureWindow) []Candidate {
	quiet := a.cfg.Audio.TransitionQuietRatio
	loud := a.cfg.Audio.TransitionLoudRatio
	winLen := a.cfg.Audio.WindowSeconds

	var out []Candidate
	for i := 1; i < len(windows); i++ {
		prev, cur := windows[i-1], windows[i]
		if prev.rms/prev.baseline > quiet {
			continue
		}
		ratio := cur.rms / cur.baseline
		if ratio < loud {
			continue
		}
		out = append(out, Candidate{
			Start:  cur.start,
			End:    cur.start + winLen,
			Score:  clamp01(0.6 + (ratio-loud)/(2*loud)),
			Method: MethodTransition,
		})
	}
	return out
}

// periodicFallback spreads n low-score candidates evenly across the
// analyzed range so downstream selection always has something to rank.
func (a *Analyzer) periodicFallback(analyzed float64, n int) []Candidate {
	if n <= 0 {
		return nil
	}
	winLen := a.cfg.Audio.WindowSeconds
	out := make([]Candidate, 0, n)
	step := analyzed / float64(n+1)
	for i := 1; i <= n; i++ {
		start := step * float64(i)
		end := math.Min(start+winLen, analyzed)
		if end <= start {
			continue
		}
		out = append(out, Candidate{
			Start:  start,
			End:    end,
			Score:  FallbackScore,
			Method: MethodPeriodicFallback,
		})
	}
	return out
}

func rootMeanSquare(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
