package orchestrator

import "github.com/cabinet-advisory/core/observability"

// Orchestrator event types emitted to the configured observer.
const (
	EventRegistered observability.EventType = "orchestrator.registered"
	EventRouted     observability.EventType = "orchestrator.routed"
)
