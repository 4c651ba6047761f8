package rephrase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/textshield/textshield/internal/models"
)

const (
	rewriteMaxTokens   = 150
	rewriteTemperature = 0.4

	systemPrompt = "You rewrite user-provided text. Respond with the rewritten text only, no commentary or quotation marks."
)

// promptFor builds the rewrite instruction for a verdict type.
func promptFor(text string, verdictType models.VerdictType) string {
	switch verdictType {
	case models.VerdictWarning:
		return fmt.Sprintf("Rephrase the following text to remove offensive language and make it more respectful, while preserving the core message: %q", text)
	case models.VerdictInfo:
		return fmt.Sprintf("Rephrase the following potentially misleading information to be more accurate and neutral: %q", text)
	default:
		return fmt.Sprintf("Rephrase the following highly negative text to be more constructive and balanced, while preserving the core message: %q", text)
	}
}

// OpenAIRewriter implements the remote rewrite strategy against the chat
// completions API.
type OpenAIRewriter struct {
	client *openai.Client
	model  string
}

func NewOpenAIRewriter(client *openai.Client, model string) *OpenAIRewriter {
	if model == "" {
		model = openai.GPT3Dot5Turbo1106
	}
	return &OpenAIRewriter{client: client, model: model}
}

// Rewrite asks the model for a replacement string. Any transport error,
// non-success status, or empty completion is returned as an error; the
// engine treats all of them the same way.
func (r *OpenAIRewriter) Rewrite(ctx context.Context, text string, verdictType models.VerdictType) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		MaxTokens:   rewriteMaxTokens,
		Temperature: rewriteTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: promptFor(text, verdictType)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	rewritten := strings.TrimSpace(resp.Choices[0].Message.Content)
	if rewritten == "" {
		return "", errors.New("chat completion returned empty content")
	}
	return rewritten, nil
}

// Ping checks whether the API is reachable with the configured credential.
func (r *OpenAIRewriter) Ping(ctx context.Context) error {
	_, err := r.client.ListModels(ctx)
	return err
}
