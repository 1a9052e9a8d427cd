package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/pokedex/internal/config"
)

type wireMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

func chatRequest() Request {
	return Request{
		System: "You are Pikachu.",
		Config: GenerationConfig{Temperature: 0.8, TopP: 0.95, TopK: 40, MaxOutputTokens: 500},
		History: []Message{
			{Role: RoleUser, Text: "Hello"},
			{Role: RoleModel, Text: "Pika! (Hi!)"},
		},
		Prompt: "What do you eat?",
	}
}

func TestOpenAIClient_Generate(t *testing.T) {
	var got struct {
		Model       string        `json:"model"`
		Messages    []wireMessage `json:"messages"`
		Temperature float32       `json:"temperature"`
		MaxTokens   int           `json:"max_tokens"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Pika pika! (Berries!)"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", "gpt-4o-mini", srv.URL)
	reply, err := c.Generate(context.Background(), chatRequest())
	require.NoError(t, err)
	assert.Equal(t, "Pika pika! (Berries!)", reply)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, float32(0.8), got.Temperature)
	assert.Equal(t, 500, got.MaxTokens)
	require.Len(t, got.Messages, 4)
	roles := []string{got.Messages[0].Role, got.Messages[1].Role, got.Messages[2].Role, got.Messages[3].Role}
	assert.Equal(t, []string{"system", "user", "assistant", "user"}, roles)
	assert.JSONEq(t, `"What do you eat?"`, string(got.Messages[3].Content))
}

func TestOpenAIClient_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("bad", "gpt-4o-mini", srv.URL)
	_, err := c.Generate(context.Background(), Request{Prompt: "hi"})
	assert.Error(t, err)
}

func TestClaudeClient_Generate(t *testing.T) {
	var got struct {
		Model       string        `json:"model"`
		System      string        `json:"system"`
		Messages    []wireMessage `json:"messages"`
		MaxTokens   int           `json:"max_tokens"`
		TopK        *int          `json:"top_k"`
		Temperature *float32      `json:"temperature"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"m1","type":"message","role":"assistant","model":"claude-3-5-haiku-latest","content":[{"type":"text","text":"Pika! (Ketchup!)"}],"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":5}}`))
	}))
	defer srv.Close()

	c := NewClaudeClient("test-key", "claude-3-5-haiku-latest", srv.URL)
	reply, err := c.Generate(context.Background(), chatRequest())
	require.NoError(t, err)
	assert.Equal(t, "Pika! (Ketchup!)", reply)

	assert.Equal(t, "You are Pikachu.", got.System)
	assert.Equal(t, 500, got.MaxTokens)
	require.NotNil(t, got.TopK)
	assert.Equal(t, 40, *got.TopK)
	require.NotNil(t, got.Temperature)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Equal(t, "user", got.Messages[2].Role)
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	_, err := NewClient(ctx, config.LLMConfig{Provider: "gemini"})
	assert.ErrorIs(t, err, ErrNoCredential)

	_, err = NewClient(ctx, config.LLMConfig{})
	assert.ErrorIs(t, err, ErrNoCredential)

	_, err = NewClient(ctx, config.LLMConfig{Provider: "openai"})
	assert.ErrorIs(t, err, ErrNoCredential)

	_, err = NewClient(ctx, config.LLMConfig{Provider: "Claude"})
	assert.ErrorIs(t, err, ErrNoCredential)

	c, err := NewClient(ctx, config.LLMConfig{Provider: "openai", APIKey: "k", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = NewClient(ctx, config.LLMConfig{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	_, err = NewClient(ctx, config.LLMConfig{Provider: "watson"})
	assert.EqualError(t, err, "unsupported llm provider: watson")
}

func TestOllamaClient_UsesOpenAIEndpoint(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = r.URL.Path == "/v1/chat/completions"
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := NewOllamaClient("llama3", srv.URL+"/")
	reply, err := c.Generate(context.Background(), Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.True(t, hit)
}

func TestGeminiHelpers(t *testing.T) {
	history := geminiHistory([]Message{
		{Role: RoleUser, Text: "Hello"},
		{Role: RoleModel, Text: "Hi"},
	})
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
	assert.Equal(t, []genai.Part{genai.Text("Hi")}, history[1].Parts)

	text, err := responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Pika"), genai.Text("chu!")}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pikachu!", text)

	_, err = responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)
	_, err = responseText(nil)
	assert.Error(t, err)

	model := &genai.GenerativeModel{}
	applyGeminiConfig(model, GenerationConfig{Temperature: 0.8, TopK: 40})
	require.NotNil(t, model.Temperature)
	assert.Equal(t, float32(0.8), *model.Temperature)
	assert.Equal(t, int32(40), *model.TopK)
	assert.Nil(t, model.TopP)
}
