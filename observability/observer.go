// Package observability provides event-based observability for the agent,
// orchestrator, and insights subsystems. Hosts subscribe an Observer to
// render chat transcripts or audit views; emission is fire-and-forget and
// listeners never produce a response. Level values align with OpenTelemetry
// SeverityNumbers.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level represents event severity aligned with OTel SeverityNumber ranges.
type Level int

const (
	LevelVerbose Level = 5  // OTel DEBUG (5-8)
	LevelInfo    Level = 9  // OTel INFO (9-12)
	LevelWarning Level = 13 // OTel WARN (13-16)
	LevelError   Level = 17 // OTel ERROR (17-20)
)

// String returns the OTel severity text for the level.
func (l Level) String() string {
	switch {
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	default:
		return "ERROR"
	}
}

// SlogLevel maps this level to the corresponding slog.Level.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= 8:
		return slog.LevelDebug
	case l <= 12:
		return slog.LevelInfo
	case l <= 16:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType identifies the kind of event. Each subsystem defines its own
// constants using this type (e.g. "agent.message.received",
// "orchestrator.routed", "insights.new").
type EventType string

// Event is an observability event emitted by a subsystem. Agent names the
// actor the event concerns, when there is one; Source is the emitting
// operation.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Agent     string
	Source    string
	Data      map[string]any
}

// Observer receives events from subsystems for logging, auditing, or UI
// rendering. Implementations must not block the emitting call path.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}
