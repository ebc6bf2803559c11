package highlight

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"clipforge/internal/audioexcite"
	"clipforge/internal/eventtext"
	"clipforge/internal/gameplay"
)

// eventBonuses weights corroborating announcements by how decisive the
// underlying moment tends to be.
var eventBonuses = map[eventtext.EventType]float64{
	eventtext.EventKill:      0.15,
	eventtext.EventMultiKill: 0.40,
	eventtext.EventShutdown:  0.35,
	eventtext.EventBaron:     0.30,
	eventtext.EventDragon:    0.30,
	eventtext.EventTurret:    0.20,
}

// multiSignalBonus rewards windows corroborated by two or more distinct
// event types.
const multiSignalBonus = 0.2

var methodLabels = map[audioexcite.Method]string{
	audioexcite.MethodVolumeSpike:      "volume spike",
	audioexcite.MethodDensity:          "sound density",
	audioexcite.MethodTransition:       "quiet-to-loud onset",
	audioexcite.MethodPeriodicFallback: "periodic sampling",
}

// correlate turns raw audio candidates into ranked highlight windows by
// gating them against gameplay intervals, attaching nearby events, scoring,
// merging, and enforcing clip duration and spacing bounds.
func (e *Engine) correlate(candidates []audioexcite.Candidate, gp gameplay.Result, events []eventtext.Event, analyzed float64) []Window {
	clips := e.cfg.Clips

	var windows []Window
	for _, cand := range candidates {
		overlapFrac, confidence := gameplayOverlap(cand.Start, cand.End, gp.Intervals)
		if overlapFrac < clips.MinGameplayOverlap {
			continue
		}

		nearby := eventsNear(events, cand.Start-clips.CorroborationToleranceSeconds,
			cand.End+clips.CorroborationToleranceSeconds)

		signals := []string{"audio:" + string(cand.Method)}
		bonus := 0.0
		distinct := map[eventtext.EventType]bool{}
		for _, ev := range nearby {
			if !distinct[ev.Type] {
				distinct[ev.Type] = true
				bonus += eventBonuses[ev.Type]
				signals = append(signals, "event:"+string(ev.Type))
			}
		}
		if len(distinct) >= 2 {
			bonus += multiSignalBonus
		}

		sort.Strings(signals)
		windows = append(windows, Window{
			Start:   cand.Start,
			End:     cand.End,
			Peak:    (cand.Start + cand.End) / 2,
			Score:   clamp01((cand.Score + bonus) * (0.5 + 0.5*confidence)),
			Signals: signals,
		})
	}

	windows = mergeWindows(windows, clips.MergeToleranceSeconds)

	// Clamping stretches short windows around their peaks, so the gameplay
	// gate has to be re-checked on the widened range.
	clamped := windows[:0]
	for _, w := range windows {
		w = clampDuration(w, clips.MinClipSeconds, clips.MaxClipSeconds, analyzed)
		if frac, _ := gameplayOverlap(w.Start, w.End, gp.Intervals); frac < clips.MinGameplayOverlap {
			continue
		}
		clamped = append(clamped, w)
	}
	windows = enforceSpacing(clamped, clips.MinSpacingSeconds, clips.MergeToleranceSeconds, clips.MaxHighlights)

	sort.Slice(windows, func(i, j int) bool { return windows[i].Start < windows[j].Start })
	for i := range windows {
		windows[i].Rationale = rationale(windows[i].Signals, gp.Fallback)
	}
	return windows
}

// gameplayOverlap returns the fraction of [start, end) covered by gameplay
// intervals and the confidence of the interval contributing the most
// overlap.
func gameplayOverlap(start, end float64, intervals []gameplay.Interval) (float64, float64) {
	length := end - start
	if length <= 0 {
		return 0, 0
	}
	var covered, best, confidence float64
	for _, iv := range intervals {
		overlap := math.Min(end, iv.End) - math.Max(start, iv.Start)
		if overlap <= 0 {
			continue
		}
		covered += overlap
		if overlap > best {
			best = overlap
			confidence = iv.Confidence
		}
	}
	return covered / length, confidence
}

func eventsNear(events []eventtext.Event, start, end float64) []eventtext.Event {
	var out []eventtext.Event
	for _, ev := range events {
		if ev.Timestamp >= start && ev.Timestamp <= end {
			out = append(out, ev)
		}
	}
	return out
}

// mergeWindows coalesces windows whose gap is at most tolerance seconds.
// The merged window spans the union, keeps the higher score and its peak,
// and unions the signal lists. Input order does not matter; output is
// sorted by start.
func mergeWindows(windows []Window, tolerance float64) []Window {
	if len(windows) == 0 {
		return nil
	}
	sort.Slice(windows, func(i, j int) bool {
		a, b := windows[i], windows[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.Score > b.Score
	})

	out := []Window{windows[0]}
	for _, w := range windows[1:] {
		last := &out[len(out)-1]
		if w.Start-last.End > tolerance {
			out = append(out, w)
			continue
		}
		if w.End > last.End {
			last.End = w.End
		}
		if w.Score > last.Score {
			last.Score = w.Score
			last.Peak = w.Peak
		}
		last.Signals = unionSignals(last.Signals, w.Signals)
	}
	return out
}

func unionSignals(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// clampDuration stretches short windows and trims long ones symmetrically
// around the peak, keeping the result inside [0, analyzed].
func clampDuration(w Window, minLen, maxLen, analyzed float64) Window {
	length := w.End - w.Start
	target := length
	if length < minLen {
		target = minLen
	} else if length > maxLen {
		target = maxLen
	}
	if target == length {
		return w
	}
	if target > analyzed {
		target = analyzed
	}

	start := w.Peak - target/2
	if start < 0 {
		start = 0
	}
	end := start + target
	if end > analyzed {
		end = analyzed
		start = end - target
		if start < 0 {
			start = 0
		}
	}
	w.Start = start
	w.End = end
	return w
}

// enforceSpacing keeps the highest-scoring windows whose starts are at
// least spacing seconds apart and whose ranges overlap a kept window by at
// most overlapTolerance seconds, up to limit windows. Ties favor the
// earlier window so output is deterministic.
func enforceSpacing(windows []Window, spacing, overlapTolerance float64, limit int) []Window {
	sort.Slice(windows, func(i, j int) bool {
		if windows[i].Score != windows[j].Score {
			return windows[i].Score > windows[j].Score
		}
		return windows[i].Start < windows[j].Start
	})

	var kept []Window
	for _, w := range windows {
		if limit > 0 && len(kept) >= limit {
			break
		}
		tooClose := false
		for _, k := range kept {
			if math.Abs(w.Start-k.Start) < spacing {
				tooClose = true
				break
			}
			if math.Min(w.End, k.End)-math.Max(w.Start, k.Start) > overlapTolerance {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept = append(kept, w)
		}
	}
	return kept
}

// rationale renders the signal list into a one-line explanation.
func rationale(signals []string, gameplayFallback bool) string {
	var methods, eventTypes []string
	for _, s := range signals {
		switch {
		case strings.HasPrefix(s, "audio:"):
			method := audioexcite.Method(strings.TrimPrefix(s, "audio:"))
			if label, ok := methodLabels[method]; ok {
				methods = append(methods, label)
			} else {
				methods = append(methods, string(method))
			}
		case strings.HasPrefix(s, "event:"):
			eventTypes = append(eventTypes, strings.TrimPrefix(s, "event:"))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "audio %s", strings.Join(methods, ", "))
	if len(eventTypes) > 0 {
		fmt.Fprintf(&b, "; corroborated by %s", strings.Join(eventTypes, ", "))
	}
	if gameplayFallback {
		b.WriteString("; gameplay unverified")
	}
	return b.String()
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
