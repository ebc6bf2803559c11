// Package media defines the read-only view of a recording that the
// detection pipeline consumes.
//
// Handle exposes duration, audio samples by time range, and frames by
// timestamp. Implementations report partial decode failures as
// degraded-input errors (services.ErrDegradedInput) so analyzers can ride
// through them with reduced output instead of failing the run. The engine
// never mutates or persists a Handle; ownership stays with the caller.
package media
