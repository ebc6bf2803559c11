package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks out-of-range or contradictory settings detected
	// before any analysis starts.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks malformed caller input such as an empty media path.
	ErrValidation = errors.New("validation error")
	// ErrExternalTool marks failures from ffmpeg, ffprobe, or tesseract.
	ErrExternalTool = errors.New("external tool error")
	// ErrDegradedInput marks media that only partially decodes. Analyzers
	// report it and continue with reduced output instead of failing the run.
	ErrDegradedInput = errors.New("degraded input")
	// ErrNoGameplay marks a run where no frame classified as gameplay and the
	// whole-duration fallback interval was used.
	ErrNoGameplay = errors.New("no gameplay detected")
	// ErrInsufficientSignal marks a run whose candidates all failed gating,
	// spacing, or duration constraints. An empty result is still valid.
	ErrInsufficientSignal = errors.New("insufficient signal")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Degraded reports whether err represents a condition the pipeline should
// ride through with reduced output rather than abort.
func Degraded(err error) bool {
	return errors.Is(err, ErrDegradedInput) || errors.Is(err, ErrNoGameplay)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
