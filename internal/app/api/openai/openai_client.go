package openai

import (
	"github.com/sashabaranov/go-openai"
)

// NewClient builds the OpenAI client for the Whisper API. baseURL overrides
// the default endpoint, mainly for tests against a local stub.
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}
