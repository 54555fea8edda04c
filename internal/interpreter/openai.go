package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	openAIAPIURL       = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel = "gpt-4o-mini"
)

// OpenAIClient generates interpretations with the OpenAI Chat Completions API.
type OpenAIClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
	model      string
}

// OpenAIConfig holds configuration for the OpenAI client.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewOpenAIClient creates a new OpenAI API client.
func NewOpenAIClient(config OpenAIConfig) *OpenAIClient {
	model := config.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	apiURL := config.BaseURL
	if apiURL == "" {
		apiURL = openAIAPIURL
	}

	return &OpenAIClient{
		apiKey:     config.APIKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeoutOrDefault(config.Timeout)},
		model:      model,
	}
}

type openAIRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends a chat completion request.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(openAIRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var out openAIResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("API error: %s - %s", out.Error.Type, out.Error.Message)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from API")
	}

	return out.Choices[0].Message.Content, nil
}

// Interpret asks the model for a short interpretation of a quote.
func (c *OpenAIClient) Interpret(ctx context.Context, text, author string) (string, error) {
	response, err := c.Complete(ctx, SystemPrompt, fmt.Sprintf(InterpretationPrompt, text, author))
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	return cleanResponse(response), nil
}
