package gameplay

// FallbackConfidence is assigned to the full-range interval emitted when the
// classifier cannot see any HUD evidence. It is deliberately low so scoring
// discounts windows that rest on it.
const FallbackConfidence = 0.3

// Interval is a contiguous stretch classified as active play.
type Interval struct {
	Start      float64
	End        float64
	Confidence float64
}

// Contains reports whether the timestamp falls inside the interval.
func (iv Interval) Contains(ts float64) bool {
	return ts >= iv.Start && ts < iv.End
}

// Result is the classifier output for one run.
type Result struct {
	Intervals []Interval
	// Fallback is set when the intervals are the full-range placeholder
	// rather than observed HUD evidence.
	Fallback bool
	// SampledFrames counts the frames actually examined.
	SampledFrames int
}
