package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/orbaps/Recruit-AI-1/domain"
)

// Provider sends one analysis prompt to an LLM vendor and returns the first
// textual answer. Adapters are stateless; credentials and sampling settings
// travel with each request.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// Request carries everything one completion call needs. MaxTokens and
// Temperature are forwarded into the vendor payload as-is.
type Request struct {
	APIKey      string
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// SystemPersona is attached as the system instruction on every call, or
// prepended to the prompt for vendors whose wire format has no system role.
const SystemPersona = "You are an expert HR professional and recruiter."

const (
	DefaultMaxTokens   = 3000
	DefaultTemperature = 0.7

	requestTimeout = 120 * time.Second
)

// Registered vendor names.
const (
	Gemini     = "gemini"
	OpenAI     = "openai"
	Anthropic  = "anthropic"
	Cohere     = "cohere"
	XAI        = "xai"
	Mistral    = "mistral"
	Perplexity = "perplexity"
	Together   = "together"
)

// Registry resolves vendor names to their adapters. Adding a vendor means
// registering one more adapter here.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds the registry with every supported vendor. The client is
// shared across adapters; pass nil for a default with a request timeout
// generous enough for long analysis completions.
func NewRegistry(client *http.Client) *Registry {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}

	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range []Provider{
		NewGemini(client),
		NewAnthropic(client),
		NewCohere(client),
		NewOpenAICompatible(OpenAI, "https://api.openai.com/v1/chat/completions", client),
		NewOpenAICompatible(XAI, "https://api.x.ai/v1/chat/completions", client),
		NewOpenAICompatible(Mistral, "https://api.mistral.ai/v1/chat/completions", client),
		NewOpenAICompatible(Perplexity, "https://api.perplexity.ai/chat/completions", client),
		NewOpenAICompatible(Together, "https://api.together.xyz/v1/chat/completions", client),
	} {
		r.providers[p.Name()] = p
	}
	return r
}

// Lookup resolves a vendor by name. An unknown vendor is a configuration
// problem, kept distinct from vendor-side failures.
func (r *Registry) Lookup(name string) (Provider, error) {
	p, ok := r.providers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("unsupported AI provider %q", name)}
	}
	return p, nil
}

// Names lists the registered vendors in stable order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Complete resolves the vendor and performs one call. Credentials are checked
// before any network I/O; a missing key never reaches the wire.
func (r *Registry) Complete(ctx context.Context, vendor string, req Request) (string, error) {
	p, err := r.Lookup(vendor)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(req.APIKey) == "" {
		return "", &domain.ConfigurationError{Reason: fmt.Sprintf("missing API key for provider %q", p.Name())}
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}
	return p.Complete(ctx, req)
}

// postJSON performs one vendor call and returns the response body. Transport
// errors and non-2xx statuses both surface as ProviderError so callers can
// tell vendor failures apart from parsing fallbacks.
func postJSON(ctx context.Context, client *http.Client, vendor, url string, headers map[string]string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &domain.ProviderError{Vendor: vendor, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.ProviderError{Vendor: vendor, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{Vendor: vendor, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ProviderError{Vendor: vendor, Err: err}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.ProviderError{
			Vendor: vendor,
			Err:    fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet(data)),
		}
	}
	return data, nil
}

func snippet(data []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(data))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
