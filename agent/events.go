package agent

import "github.com/cabinet-advisory/core/observability"

// Agent event types emitted to subscribed observers.
const (
	EventMessageReceived observability.EventType = "agent.message.received"
	EventMessageSent     observability.EventType = "agent.message.sent"
	EventConscience      observability.EventType = "agent.conscience"
)
