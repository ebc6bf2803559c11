package store

import "time"

// Run is one persisted analysis of a source file.
type Run struct {
	ID               string
	SourcePath       string
	DurationSeconds  float64
	AnalyzedSeconds  float64
	PrefixSeconds    float64
	ClipCount        int
	DegradedAudio    bool
	GameplayFallback bool
	CreatedAt        time.Time
}

// Clip is one persisted highlight window belonging to a run.
type Clip struct {
	ID        int64
	RunID     string
	Start     float64
	End       float64
	Peak      float64
	Score     float64
	Signals   []string
	Rationale string
}
