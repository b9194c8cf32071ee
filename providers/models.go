package providers

// Default model per vendor, used when a batch request does not pick one.
var defaultModels = map[string]string{
	Gemini:     "gemini-1.5-flash",
	OpenAI:     "gpt-4o-mini",
	Anthropic:  "claude-3-5-sonnet-20241022",
	Cohere:     "command-r-plus",
	XAI:        "grok-beta",
	Mistral:    "mistral-small-latest",
	Perplexity: "llama-3.1-sonar-small-128k-online",
	Together:   "mistralai/Mixtral-8x7B-Instruct-v0.1",
}

// DefaultModel returns the fallback model for a vendor, or "" for an unknown
// vendor.
func DefaultModel(vendor string) string {
	return defaultModels[vendor]
}
