package tagger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const openAITaggerTimeout = 30 * time.Second

// OpenAITagger asks a chat model for Universal Dependencies analyses.
type OpenAITagger struct {
	apiKey string
	model  string
	client *openai.Client
}

type openAITaggerReply struct {
	Tokens []struct {
		Text  string `json:"text"`
		POS   string `json:"pos"`
		Morph string `json:"morph"`
	} `json:"tokens"`
}

// NewOpenAITagger creates a tagger backed by the OpenAI chat API
func NewOpenAITagger(apiKey, model string) *OpenAITagger {
	return NewOpenAITaggerWithConfig(openai.DefaultConfig(apiKey), apiKey, model)
}

// NewOpenAITaggerWithConfig allows pointing the client at another base URL.
func NewOpenAITaggerWithConfig(cfg openai.ClientConfig, apiKey, model string) *OpenAITagger {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITagger{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Name returns the tagger name
func (o *OpenAITagger) Name() string {
	return "openai"
}

// Analyze tags word
func (o *OpenAITagger) Analyze(ctx context.Context, word string) ([]Token, error) {
	if o.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, openAITaggerTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a Spanish morphological tagger. Answer in JSON using Universal Dependencies UPOS tags and FEATS strings.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(`Analyse the Spanish input '%s' in isolation.
Return {"tokens":[{"text":"...","pos":"UPOS","morph":"Key=Value|Key=Value"}]}.
Use an empty morph string when the token has no features.`, word),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
		MaxTokens:   200,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: OpenAI API error: %v", ErrTagger, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no analysis returned", ErrTagger)
	}

	var reply openAITaggerReply
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, fmt.Errorf("%w: invalid analysis json: %v", ErrTagger, err)
	}

	tokens := make([]Token, 0, len(reply.Tokens))
	for _, t := range reply.Tokens {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		tokens = append(tokens, Token{
			Text:  t.Text,
			POS:   strings.ToUpper(strings.TrimSpace(t.POS)),
			Morph: strings.TrimSpace(t.Morph),
		})
	}
	return tokens, nil
}
