package persona

import (
	"strings"

	"github.com/agenthands/pokedex/internal/llm"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a chat transcript.
type Message struct {
	Role    Role   `json:"role" binding:"oneof=user assistant"`
	Content string `json:"content"`
}

// openingTurn is inserted when a transcript starts with the assistant.
const openingTurn = "Hello"

// FormatHistory converts a transcript into provider history: blank turns
// are dropped, a user greeting is prepended when the assistant spoke first,
// and assistant turns become model turns.
func FormatHistory(transcript []Message) []llm.Message {
	valid := make([]Message, 0, len(transcript))
	for _, m := range transcript {
		if strings.TrimSpace(m.Content) != "" {
			valid = append(valid, m)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	out := make([]llm.Message, 0, len(valid)+1)
	if valid[0].Role == RoleAssistant {
		out = append(out, llm.Message{Role: llm.RoleUser, Text: openingTurn})
	}
	for _, m := range valid {
		role := llm.RoleModel
		if m.Role == RoleUser {
			role = llm.RoleUser
		}
		out = append(out, llm.Message{Role: role, Text: m.Content})
	}
	return out
}

func hasUserTurn(transcript []Message) bool {
	for _, m := range transcript {
		if m.Role == RoleUser {
			return true
		}
	}
	return false
}
