package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/orbaps/Recruit-AI-1/domain"
)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"
)

// AnthropicProvider calls the Anthropic messages API. Authentication uses the
// x-api-key header and the persona goes into the top-level system field.
type AnthropicProvider struct {
	baseURL string
	client  *http.Client
}

func NewAnthropic(client *http.Client) *AnthropicProvider {
	return &AnthropicProvider{baseURL: anthropicDefaultBaseURL, client: client}
}

func (p *AnthropicProvider) Name() string { return Anthropic }

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (p *AnthropicProvider) Complete(ctx context.Context, req Request) (string, error) {
	payload := anthropicRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		System:      SystemPersona,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
	}

	headers := map[string]string{
		"x-api-key":         req.APIKey,
		"anthropic-version": anthropicVersion,
	}
	data, err := postJSON(ctx, p.client, Anthropic, p.baseURL+"/v1/messages", headers, payload)
	if err != nil {
		return "", err
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &domain.ProviderError{Vendor: Anthropic, Err: err}
	}
	for _, block := range parsed.Content {
		if block.Text != "" {
			return block.Text, nil
		}
	}
	return "", &domain.ProviderError{Vendor: Anthropic, Err: errors.New("response contains no text block")}
}
