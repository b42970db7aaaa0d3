package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"planwise-backend/internal/assistant"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements assistant.Client using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("ASSISTANT_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := 60 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float32       `json:"temperature,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// EnhanceAnalysis asks the model to enrich a deterministic analysis with
// human-readable insights and tips.
func (c *Client) EnhanceAnalysis(ctx context.Context, input assistant.AnalysisInput) (assistant.AnalysisOutput, error) {
	userContent := fmt.Sprintf(
		"Category: %s\n\nUser profile JSON:\n%s\n\nRanking analysis JSON:\n%s",
		input.Category, string(input.ProfileJSON), string(input.AnalysisJSON),
	)

	messages := []chatMessage{
		{Role: "system", Content: assistant.AdvisorPrompt()},
		{Role: "user", Content: userContent},
	}

	raw, err := c.chatOnce(ctx, messages)
	if err != nil {
		return assistant.AnalysisOutput{}, err
	}

	var out assistant.AnalysisOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return assistant.AnalysisOutput{}, fmt.Errorf("invalid JSON from OpenAI: %w", err)
	}
	return out, nil
}

// Chat answers a consumer question against the supplied catalog snapshot.
func (c *Client) Chat(ctx context.Context, input assistant.ChatInput) (assistant.ChatOutput, error) {
	userContent := fmt.Sprintf(
		"Category: %s\n\nQuestion: %s\n\nCatalog JSON:\n%s",
		input.Category, input.Question, string(input.CatalogJSON),
	)

	messages := []chatMessage{
		{Role: "system", Content: assistant.ChatPrompt()},
		{Role: "user", Content: userContent},
	}

	raw, err := c.chatOnce(ctx, messages)
	if err != nil {
		return assistant.ChatOutput{}, err
	}

	var out assistant.ChatOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return assistant.ChatOutput{}, fmt.Errorf("invalid JSON from OpenAI: %w", err)
	}
	if strings.TrimSpace(out.Answer) == "" {
		return assistant.ChatOutput{}, fmt.Errorf("openai chat returned empty answer")
	}
	return out, nil
}

func (c *Client) chatOnce(ctx context.Context, messages []chatMessage) (json.RawMessage, error) {
	temp := float32(0)
	reqBody := chatRequest{
		Model:    c.model,
		Messages: messages,
		ResponseFormat: responseFormat{
			Type: "json_object",
		},
	}
	reqBody.Temperature = &temp
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("openai request timeout: %w", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}
	if parsed.Usage != nil {
		log.Printf("openai usage model=%s prompt=%d completion=%d total=%d",
			c.model, parsed.Usage.PromptTokens, parsed.Usage.CompletionTokens, parsed.Usage.TotalTokens)
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("openai response empty content")
	}
	return json.RawMessage(content), nil
}

var _ assistant.Client = (*Client)(nil)
