package persona

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/agenthands/pokedex/internal/catalog"
	"github.com/agenthands/pokedex/internal/llm"
)

// UnavailableMessage is the reply when no provider is configured.
const UnavailableMessage = "Sorry, I can't communicate right now. Please try again later."

// GenerationConfig is the fixed sampling setup for persona replies.
var GenerationConfig = llm.GenerationConfig{
	Temperature:     0.8,
	TopP:            0.95,
	TopK:            40,
	MaxOutputTokens: 500,
}

// Greeting is the opening line used before the user has said anything.
func Greeting(d catalog.Detail) string {
	return fmt.Sprintf("%s! (Hello! I'm %s! How can I help you today?)", DeriveSound(d.Name), capitalize(d.Name))
}

// ErrorReply is the in-character apology used when generation fails.
func ErrorReply(d catalog.Detail) string {
	return fmt.Sprintf("%s... (Sorry, I couldn't understand you. Can you try again?)", DeriveSound(d.Name))
}

// Responder answers chat transcripts in character.
type Responder struct {
	client llm.LLMClient
	logger *zap.Logger
}

// NewResponder wraps client. A nil client makes every reply after the
// greeting the unavailable message.
func NewResponder(client llm.LLMClient, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{client: client, logger: logger}
}

// Available reports whether a provider is configured.
func (r *Responder) Available() bool {
	return r.client != nil
}

// Respond returns the creature's reply to the last turn of transcript.
// It never fails: provider problems become fixed fallback replies.
func (r *Responder) Respond(ctx context.Context, transcript []Message, d catalog.Detail) string {
	if !hasUserTurn(transcript) {
		return Greeting(d)
	}
	if r.client == nil {
		r.logger.Warn("Chat requested without an llm provider", zap.String("pokemon", d.Name))
		return UnavailableMessage
	}

	req := llm.Request{
		System: BuildSystemPrompt(d),
		Config: GenerationConfig,
		Prompt: transcript[len(transcript)-1].Content,
	}
	if len(transcript) > 1 {
		req.History = FormatHistory(transcript[:len(transcript)-1])
	}

	reply, err := r.client.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, llm.ErrNoCredential) {
			r.logger.Warn("Chat provider has no credential", zap.Error(err))
			return UnavailableMessage
		}
		r.logger.Error("Failed to generate chat reply",
			zap.String("pokemon", d.Name),
			zap.Int("turns", len(transcript)),
			zap.Error(err))
		return ErrorReply(d)
	}
	return reply
}
