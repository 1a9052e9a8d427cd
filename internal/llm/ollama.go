package llm

import (
	"strings"
)

const defaultOllamaURL = "http://localhost:11434"

// NewOllamaClient talks to a local Ollama server through its
// OpenAI-compatible endpoint. Ollama ignores the key but the client sends
// one.
func NewOllamaClient(model string, baseURL string) *OpenAIClient {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(baseURL, "/v1") {
		baseURL += "/v1"
	}
	return NewOpenAIClient("ollama", model, baseURL)
}
