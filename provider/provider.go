// Package provider defines the external capabilities consumed by agents: a
// completion provider that turns role-tagged messages into generated text,
// and a retrieval provider that returns prose context for a query. Both are
// interfaces so hosts and tests can substitute doubles; the HTTP clients
// here are the production implementations.
package provider

import (
	"context"
	"errors"

	"github.com/cabinet-advisory/core/core/protocol"
)

// Request carries a completion call: the full role-tagged conversation and
// the sampling temperature chosen by the calling agent.
type Request struct {
	Messages    []protocol.Message
	Temperature float64
}

// Completion is the provider's answer to a Request.
type Completion struct {
	Content      string
	Model        string
	FinishReason string
}

// Completer is the completion capability. Implementations signal failure by
// returning an error; callers own retry and fallback policy.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
}

// Retriever is the news/document retrieval capability. Updates returns
// unstructured prose suitable for embedding in a prompt.
type Retriever interface {
	Updates(ctx context.Context, query string) (string, error)
}

// Sentinel errors shared by provider implementations.
var (
	ErrEmptyResponse = errors.New("provider returned no choices")
	ErrMissingAPIKey = errors.New("api key not configured")
)
