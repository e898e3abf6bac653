package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini asks a Gemini model for a one word translation.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini provider. baseURL overrides the API endpoint
// and is only set in tests.
func NewGemini(ctx context.Context, apiKey, model, baseURL string) (*Gemini, error) {
	if model == "" {
		model = DefaultGeminiModel
	}

	config := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return ProviderGemini }

func (g *Gemini) Translate(ctx context.Context, word, source, target string) Outcome {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(translationPrompt(word, source, target)),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](0.2),
			MaxOutputTokens: 50,
		},
	)
	if err != nil {
		return TransportError(g.Name(), err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return NotFound(g.Name(), word)
	}
	return OK(text)
}

var languageNames = map[string]string{
	"es": "Spanish",
	"en": "English",
}

// translationPrompt is shared by the LLM providers.
func translationPrompt(word, source, target string) string {
	from, ok := languageNames[source]
	if !ok {
		from = source
	}
	to, ok := languageNames[target]
	if !ok {
		to = target
	}
	return fmt.Sprintf("Translate the %s word '%s' to %s. Respond with only the %s translation, nothing else.",
		from, word, to, to)
}
