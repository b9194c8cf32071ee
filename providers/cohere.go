package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/orbaps/Recruit-AI-1/domain"
)

const cohereDefaultBaseURL = "https://api.cohere.ai"

// CohereProvider calls the legacy Cohere generate API, which takes a single
// prompt string instead of a message list. The persona is prepended there.
type CohereProvider struct {
	baseURL string
	client  *http.Client
}

func NewCohere(client *http.Client) *CohereProvider {
	return &CohereProvider{baseURL: cohereDefaultBaseURL, client: client}
}

func (p *CohereProvider) Name() string { return Cohere }

type cohereRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type cohereResponse struct {
	Generations []struct {
		Text string `json:"text"`
	} `json:"generations"`
}

func (p *CohereProvider) Complete(ctx context.Context, req Request) (string, error) {
	payload := cohereRequest{
		Model:       req.Model,
		Prompt:      SystemPersona + "\n\n" + req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	headers := map[string]string{"Authorization": "Bearer " + req.APIKey}
	data, err := postJSON(ctx, p.client, Cohere, p.baseURL+"/v1/generate", headers, payload)
	if err != nil {
		return "", err
	}

	var parsed cohereResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &domain.ProviderError{Vendor: Cohere, Err: err}
	}
	if len(parsed.Generations) == 0 || parsed.Generations[0].Text == "" {
		return "", &domain.ProviderError{Vendor: Cohere, Err: errors.New("response contains no generations")}
	}
	return parsed.Generations[0].Text, nil
}
