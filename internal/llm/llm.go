package llm

import (
	"context"
	"errors"
)

// Message is one role-tagged turn in a chat completion.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Request is a single completion call against the hosted model.
type Request struct {
	Messages    []Message
	Temperature float32
}

// Client abstracts the hosted model used for analysis calls.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrNotConfigured is returned when no provider credential is present.
var ErrNotConfigured = errors.New("llm not configured")

// PlaceholderClient stands in until a provider credential is supplied.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}
