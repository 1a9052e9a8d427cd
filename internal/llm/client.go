package llm

import (
	"context"
	"errors"
)

// ErrNoCredential is returned when a provider needs an API key and none is
// configured.
var ErrNoCredential = errors.New("llm: no API key configured")

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one prior turn of a conversation.
type Message struct {
	Role Role
	Text string
}

// GenerationConfig holds the sampling parameters. Zero values leave the
// provider default in place.
type GenerationConfig struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// Request is a single generation call. An empty History makes it a
// single-shot prompt; otherwise Prompt is sent as the next user turn after
// History.
type Request struct {
	System  string
	Config  GenerationConfig
	History []Message
	Prompt  string
}

type LLMClient interface {
	Generate(ctx context.Context, req Request) (string, error)
}
