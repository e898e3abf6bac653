package translation

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAI translates with a chat completion model.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI provider.
func NewOpenAI(apiKey, model string) *OpenAI {
	return NewOpenAIWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewOpenAIWithConfig allows a custom client config, e.g. a test server.
func NewOpenAIWithConfig(config openai.ClientConfig, model string) *OpenAI {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (o *OpenAI) Name() string { return ProviderOpenAI }

func (o *OpenAI) Translate(ctx context.Context, word, source, target string) Outcome {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: translationPrompt(word, source, target),
			},
		},
		MaxTokens:   50,
		Temperature: 0.3,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return TransportError(o.Name(), err)
	}

	if len(resp.Choices) == 0 {
		return NotFound(o.Name(), word)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return NotFound(o.Name(), word)
	}
	return OK(text)
}
