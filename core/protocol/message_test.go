package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinet-advisory/core/core/protocol"
)

func TestNewMessage(t *testing.T) {
	msg := protocol.NewMessage(protocol.RoleUser, "Bonjour")

	assert.Equal(t, protocol.RoleUser, msg.Role)
	assert.Equal(t, "Bonjour", msg.Content)
	assert.False(t, msg.Timestamp.IsZero())
	assert.Nil(t, msg.Metadata)
}

func TestCloneDoesNotShareMetadata(t *testing.T) {
	msg := protocol.NewMessageWithMetadata(protocol.RoleAssistant, "ok", map[string]string{"from": "conseil"})

	clone := msg.Clone()
	clone.Metadata["from"] = "revision"

	require.Equal(t, "conseil", msg.Metadata["from"])
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		limit   int
		want    string
	}{
		{"short content unchanged", "hello", 100, "hello"},
		{"exact length unchanged", "abc", 3, "abc"},
		{"long content truncated", "abcdef", 3, "abc..."},
		{"multibyte runes respected", "étalé", 2, "ét..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := protocol.NewMessage(protocol.RoleUser, tt.content)
			assert.Equal(t, tt.want, msg.Preview(tt.limit))
		})
	}
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, protocol.RoleSystem.IsValid())
	assert.True(t, protocol.RoleUser.IsValid())
	assert.True(t, protocol.RoleAssistant.IsValid())
	assert.False(t, protocol.Role("tool").IsValid())
}
