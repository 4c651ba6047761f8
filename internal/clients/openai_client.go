package clients

import (
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// NewOpenAIClient builds an OpenAI client with a bounded HTTP timeout so a
// stalled rewrite call can never hang the pipeline. baseURL overrides the
// API endpoint and is empty outside tests and proxies.
func NewOpenAIClient(apiKey, baseURL string, timeout time.Duration) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{
		Timeout: timeout,
	}

	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.Duration("timeout", timeout))

	return openai.NewClientWithConfig(config)
}
