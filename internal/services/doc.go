// Package services defines the shared error taxonomy for the detection
// pipeline and the Wrap helper that tags failures with component and
// operation context.
//
// Sentinel markers separate caller misuse (ErrConfiguration, ErrValidation)
// from degraded runtime conditions the pipeline rides through
// (ErrDegradedInput, ErrNoGameplay, ErrInsufficientSignal) and from external
// tool failures (ErrExternalTool). Callers classify with errors.Is.
package services
