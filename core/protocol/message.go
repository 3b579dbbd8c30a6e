// Package protocol defines the conversation message types exchanged between
// agents, the orchestrator, and completion providers.
package protocol

import (
	"maps"
	"time"
)

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is a single turn in a conversation. Messages are immutable once
// created; routing components copy them rather than sharing references, so a
// delivered message never aliases the sender's memory.
type Message struct {
	Role      Role              `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// NewMessage creates a Message with the given role and content, stamped with
// the current time.
//
// Example:
//
//	msg := protocol.NewMessage(protocol.RoleUser, "Bonjour")
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content, Timestamp: time.Now()}
}

// NewMessageWithMetadata creates a Message carrying a copy of the given
// metadata map.
func NewMessageWithMetadata(role Role, content string, metadata map[string]string) Message {
	msg := NewMessage(role, content)
	msg.Metadata = maps.Clone(metadata)
	return msg
}

// Clone returns a deep copy of the message. The metadata map is duplicated so
// the clone can be routed without sharing mutable state with the original.
func (m Message) Clone() Message {
	clone := m
	clone.Metadata = maps.Clone(m.Metadata)
	return clone
}

// Preview returns at most n characters of the content, marking truncation
// with an ellipsis. Audit entries use it so the journal never embeds full
// message bodies.
func (m Message) Preview(n int) string {
	runes := []rune(m.Content)
	if len(runes) <= n {
		return m.Content
	}
	return string(runes[:n]) + "..."
}
