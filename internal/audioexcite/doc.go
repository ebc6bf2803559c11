// Package audioexcite scans a recording's audio track for moments that
// sound like action.
//
// Four heuristics run over a shared series of fixed-length feature windows:
// volume spikes against a rolling energy baseline, sustained energy-flux
// density, quiet-to-loud onset transitions, and an evenly spaced periodic
// fallback that keeps downstream stages fed when real detections are
// sparse. Candidate scores are normalized to [0, 1] so the correlation
// engine can compare across methods; fallback candidates are pinned to the
// lowest tier.
//
// All state (baseline, candidate pool) is scoped to a single Analyze call,
// so concurrent runs over different media never interfere.
package audioexcite
