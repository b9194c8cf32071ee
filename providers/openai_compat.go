package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/orbaps/Recruit-AI-1/domain"
)

// OpenAICompatible speaks the OpenAI chat-completions wire format, which xAI,
// Mistral, Perplexity and Together all share. One adapter type covers the five
// vendors; only the endpoint and the reported vendor name differ.
type OpenAICompatible struct {
	vendor   string
	endpoint string
	client   *http.Client
}

func NewOpenAICompatible(vendor, endpoint string, client *http.Client) *OpenAICompatible {
	return &OpenAICompatible{vendor: vendor, endpoint: endpoint, client: client}
}

func (p *OpenAICompatible) Name() string { return p.vendor }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *OpenAICompatible) Complete(ctx context.Context, req Request) (string, error) {
	payload := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPersona},
			{Role: "user", Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	headers := map[string]string{"Authorization": "Bearer " + req.APIKey}
	data, err := postJSON(ctx, p.client, p.vendor, p.endpoint, headers, payload)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &domain.ProviderError{Vendor: p.vendor, Err: err}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &domain.ProviderError{Vendor: p.vendor, Err: errors.New("response contains no message content")}
	}
	return parsed.Choices[0].Message.Content, nil
}
