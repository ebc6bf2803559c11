package highlight

import (
	"testing"

	"clipforge/internal/gameplay"
)

func TestClampDuration(t *testing.T) {
	tests := []struct {
		name               string
		w                  Window
		minLen, maxLen     float64
		analyzed           float64
		wantStart, wantEnd float64
	}{
		{"short expands around peak", Window{Start: 50, End: 52, Peak: 51}, 8, 45, 300, 47, 55},
		{"long trims around peak", Window{Start: 0, End: 60, Peak: 30}, 8, 45, 300, 7.5, 52.5},
		{"within bounds untouched", Window{Start: 10, End: 30, Peak: 20}, 8, 45, 300, 10, 30},
		{"pinned at track start", Window{Start: 0, End: 2, Peak: 1}, 8, 45, 300, 0, 8},
		{"pinned at track end", Window{Start: 298, End: 300, Peak: 299}, 8, 45, 300, 292, 300},
		{"target capped by duration", Window{Start: 0, End: 2, Peak: 1}, 8, 45, 5, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampDuration(tt.w, tt.minLen, tt.maxLen, tt.analyzed)
			if !approx(got.Start, tt.wantStart) || !approx(got.End, tt.wantEnd) {
				t.Fatalf("clampDuration = [%f, %f], want [%f, %f]",
					got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestMergeWindowsPrecedence(t *testing.T) {
	windows := []Window{
		{Start: 30, End: 34, Peak: 32, Score: 0.9, Signals: []string{"audio:density"}},
		{Start: 10, End: 14, Peak: 12, Score: 0.4, Signals: []string{"audio:volume_spike"}},
		{Start: 13, End: 18, Peak: 15.5, Score: 0.7, Signals: []string{"audio:transition"}},
	}

	merged := mergeWindows(windows, 1)
	if len(merged) != 2 {
		t.Fatalf("merged = %d windows, want 2", len(merged))
	}
	first := merged[0]
	if !approx(first.Start, 10) || !approx(first.End, 18) {
		t.Fatalf("merged range = [%f, %f], want [10, 18]", first.Start, first.End)
	}
	if !approx(first.Score, 0.7) || !approx(first.Peak, 15.5) {
		t.Fatalf("merged score/peak = %f/%f, want the stronger member's 0.7/15.5", first.Score, first.Peak)
	}
	if len(first.Signals) != 2 {
		t.Fatalf("merged signals = %v, want union of both members", first.Signals)
	}
	if !approx(merged[1].Start, 30) {
		t.Fatalf("distant window should survive unmerged, got %+v", merged[1])
	}
}

func TestGameplayOverlap(t *testing.T) {
	intervals := []gameplay.Interval{
		{Start: 0, End: 100, Confidence: 0.9},
		{Start: 150, End: 200, Confidence: 0.6},
	}

	tests := []struct {
		name           string
		start, end     float64
		wantFrac       float64
		wantConfidence float64
	}{
		{"fully covered", 40, 44, 1, 0.9},
		{"half covered", 98, 102, 0.5, 0.9},
		{"uncovered", 120, 124, 0, 0},
		{"second interval", 160, 164, 1, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frac, conf := gameplayOverlap(tt.start, tt.end, intervals)
			if !approx(frac, tt.wantFrac) || !approx(conf, tt.wantConfidence) {
				t.Fatalf("gameplayOverlap = (%f, %f), want (%f, %f)",
					frac, conf, tt.wantFrac, tt.wantConfidence)
			}
		})
	}
}

func TestEnforceSpacingDeterministicTies(t *testing.T) {
	windows := []Window{
		{Start: 100, End: 102, Score: 0.5},
		{Start: 40, End: 42, Score: 0.5},
		{Start: 45, End: 47, Score: 0.5},
	}
	kept := enforceSpacing(windows, 20, 1, 0)
	if len(kept) != 2 {
		t.Fatalf("kept = %d, want 2", len(kept))
	}
	if !approx(kept[0].Start, 40) || !approx(kept[1].Start, 100) {
		t.Fatalf("kept starts = %f, %f, want earlier tie winner 40 then 100",
			kept[0].Start, kept[1].Start)
	}
}

func TestEnforceSpacingRejectsOverlappingRanges(t *testing.T) {
	windows := []Window{
		{Start: 0, End: 40, Peak: 20, Score: 0.9},
		{Start: 38.5, End: 46.5, Peak: 42.5, Score: 0.8},
	}
	kept := enforceSpacing(windows, 20, 1, 0)
	if len(kept) != 1 {
		t.Fatalf("kept = %d, want 1 (ranges overlap 1.5s beyond 1s tolerance)", len(kept))
	}
	if !approx(kept[0].Start, 0) || !approx(kept[0].End, 40) {
		t.Fatalf("kept = %+v, want the higher-scoring [0, 40]", kept[0])
	}

	// At 1.0s of overlap the pair is within tolerance and both survive.
	windows = []Window{
		{Start: 0, End: 40, Peak: 20, Score: 0.9},
		{Start: 39, End: 47, Peak: 43, Score: 0.8},
	}
	kept = enforceSpacing(windows, 20, 1, 0)
	if len(kept) != 2 {
		t.Fatalf("kept = %d, want 2 (overlap equal to tolerance is allowed)", len(kept))
	}
}
