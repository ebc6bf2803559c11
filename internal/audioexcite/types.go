package audioexcite

// Method identifies which heuristic produced a candidate. The set is closed;
// each method's scoring contribution is part of the scoring contract.
type Method string

const (
	MethodVolumeSpike      Method = "volume_spike"
	MethodDensity          Method = "density"
	MethodTransition       Method = "transition"
	MethodPeriodicFallback Method = "periodic_fallback"
)

// FallbackScore is the fixed lowest score tier. Fallback candidates are a
// reliability guarantee, not a quality signal, and must never outrank a real
// detection of equal audio evidence.
const FallbackScore = 0.1

// Candidate is one time-stamped excitement detection. Times lie within the
// analyzed duration; Score is normalized to [0, 1].
type Candidate struct {
	Start  float64
	End    float64
	Score  float64
	Method Method
}

// featureWindow is one fixed-length slice of the track with its computed
// energy metrics. Windows are ephemeral and recomputed each run.
type featureWindow struct {
	start    float64
	rms      float64
	baseline float64
	// fluxChanges counts sub-chunk RMS deltas exceeding the density
	// threshold, a cheap stand-in for how busy the spectrum is.
	fluxChanges int
}

// Result is the analyzer output for one run.
type Result struct {
	Candidates []Candidate
	// Degraded is set when no audio track was decodable; Candidates is then
	// empty and the run continues on the remaining signal streams.
	Degraded bool
	// FallbackFired reports that the periodic fallback injected candidates.
	FallbackFired bool
	// AnalyzedSeconds is how much of the track was actually examined, after
	// applying any configured prefix bound.
	AnalyzedSeconds float64
}
