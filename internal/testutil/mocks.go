package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/palabras/internal/tagger"
	"codeberg.org/snonux/palabras/internal/translation"
)

// MockProvider mocks a translation provider
type MockProvider struct {
	ProviderName string
	Translations map[string]string
	Errors       map[string]error

	mu    sync.Mutex
	Calls []string
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Translate answers from Translations; unknown words are not found and
// words listed in Errors fail with a transport error.
func (m *MockProvider) Translate(ctx context.Context, word, source, target string) translation.Outcome {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("Translate: %s (%s->%s)", word, source, target))
	m.mu.Unlock()

	if err, ok := m.Errors[word]; ok {
		return translation.TransportError(m.Name(), err)
	}
	if text, ok := m.Translations[word]; ok {
		return translation.OK(text)
	}
	return translation.NotFound(m.Name(), word)
}

// CallCount returns how many words were translated
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockTagger mocks a morphological tagger
type MockTagger struct {
	// Tokens maps a word to its analysis. Words not listed become a
	// single token tagged with DefaultPOS.
	Tokens     map[string][]tagger.Token
	DefaultPOS string
	Errors     map[string]error
	Calls      []string
}

// Name returns the tagger name
func (m *MockTagger) Name() string { return "mock" }

// Analyze mocks tagging a word
func (m *MockTagger) Analyze(ctx context.Context, word string) ([]tagger.Token, error) {
	m.Calls = append(m.Calls, word)

	if err, ok := m.Errors[word]; ok {
		return nil, err
	}
	if tokens, ok := m.Tokens[word]; ok {
		return tokens, nil
	}

	pos := m.DefaultPOS
	if pos == "" {
		pos = "ADV"
	}
	return []tagger.Token{{Text: word, POS: pos}}, nil
}

// MockDetector mocks Spanish language detection
type MockDetector struct {
	// Scores overrides the confidence of individual words
	Scores  map[string]float64
	Default float64
}

// SpanishConfidence returns the configured score
func (m *MockDetector) SpanishConfidence(text string) float64 {
	if v, ok := m.Scores[strings.ToLower(text)]; ok {
		return v
	}
	return m.Default
}

// Token builds a tagger token; morph uses the UD "Feat=Val|Feat=Val" form.
func Token(text, pos, morph string) tagger.Token {
	return tagger.Token{Text: text, POS: pos, Morph: morph}
}
