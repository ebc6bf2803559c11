// Package highlight runs the full detection pipeline and correlates its
// signal streams into ranked highlight windows.
//
// Detect drives three stages over one media handle: audio excitement
// analysis and gameplay classification run concurrently, then event text
// scanning runs over the classified intervals. Correlation gates audio
// candidates by gameplay overlap, attaches nearby events, scores, merges
// overlapping windows, enforces clip duration bounds and minimum spacing,
// and returns the top windows in chronological order.
//
// The pipeline degrades per stream: missing audio or video weakens the
// evidence but only context cancellation or a broken source fails a run.
package highlight
