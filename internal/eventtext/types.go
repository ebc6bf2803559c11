package eventtext

import (
	"context"

	"clipforge/internal/media"
)

// EventType labels one recognized announcement.
type EventType string

const (
	EventKill      EventType = "kill"
	EventMultiKill EventType = "multi_kill"
	EventShutdown  EventType = "shutdown"
	EventBaron     EventType = "objective_baron"
	EventDragon    EventType = "objective_dragon"
	EventTurret    EventType = "objective_turret"
)

// Event is one recognized announcement with the timestamp of the frame it
// was read from.
type Event struct {
	Timestamp  float64
	Type       EventType
	Confidence float64
	// RawText is the normalized recognizer output the match was made on.
	RawText string
}

// Recognizer turns a cropped frame into text. Implementations report
// external tool failures as errors; an empty string with a nil error means
// the frame simply contained no readable text.
type Recognizer interface {
	Recognize(ctx context.Context, frame media.Frame) (string, error)
}
