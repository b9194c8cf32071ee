package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/orbaps/Recruit-AI-1/domain"
)

const geminiDefaultBaseURL = "https://generativelanguage.googleapis.com"

// GeminiProvider calls the Generative Language REST API. The API key travels
// as a query parameter and there is no system role, so the persona is
// prepended to the prompt text.
type GeminiProvider struct {
	baseURL string
	client  *http.Client
}

func NewGemini(client *http.Client) *GeminiProvider {
	return &GeminiProvider{baseURL: geminiDefaultBaseURL, client: client}
}

func (p *GeminiProvider) Name() string { return Gemini }

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: SystemPersona + "\n\n" + req.Prompt}},
		}},
		GenerationConfig: geminiGenConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		p.baseURL, url.PathEscape(req.Model), url.QueryEscape(req.APIKey))

	data, err := postJSON(ctx, p.client, Gemini, endpoint, nil, payload)
	if err != nil {
		return "", err
	}

	var parsed geminiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &domain.ProviderError{Vendor: Gemini, Err: err}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &domain.ProviderError{Vendor: Gemini, Err: errors.New("no candidates in response")}
	}
	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", &domain.ProviderError{Vendor: Gemini, Err: errors.New("no text in first candidate")}
	}
	return text, nil
}
