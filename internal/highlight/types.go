package highlight

import "clipforge/internal/eventtext"

// Stage names reported through ProgressFunc as each pipeline stage
// completes.
const (
	StageAudio     = "audio"
	StageGameplay  = "gameplay"
	StageEvents    = "events"
	StageCorrelate = "correlate"
)

// ProgressFunc receives a stage name when that stage finishes. Callbacks
// may arrive from different goroutines but never concurrently.
type ProgressFunc func(stage string)

// Window is one ranked highlight.
type Window struct {
	Start float64
	End   float64
	// Peak anchors duration adjustments; it is the moment the strongest
	// contributing signal pointed at.
	Peak  float64
	Score float64
	// Signals lists the contributing evidence, entries like
	// "audio:volume_spike" and "event:multi_kill", sorted and unique.
	Signals []string
	// Rationale is a human-readable one-liner explaining the ranking.
	Rationale string
}

// Duration returns the window length in seconds.
func (w Window) Duration() float64 { return w.End - w.Start }

// Report is the outcome of one Detect run.
type Report struct {
	Windows         []Window
	Events          []eventtext.Event
	AnalyzedSeconds float64
	// DegradedAudio is set when no audio track was decodable.
	DegradedAudio bool
	// AudioFallback is set when periodic fallback candidates were injected.
	AudioFallback bool
	// GameplayFallback is set when gameplay intervals are the full-range
	// placeholder rather than observed HUD evidence.
	GameplayFallback bool
}
