package tagger

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrTagger marks failures of the external analysis engine.
var ErrTagger = errors.New("tagger failed")

// Token is one morpheme returned by a tagger: its text, a Universal
// Dependencies part-of-speech tag and the raw feature string
// ("Gender=Masc|Number=Sing").
type Token struct {
	Text  string
	POS   string
	Morph string
}

// Features parses the token's morphology string.
func (t Token) Features() Features {
	return ParseFeatures(t.Morph)
}

// Features is a set of morphological Key=Value flags. A key may carry
// several comma separated values (PronType=Int,Rel).
type Features map[string][]string

// ParseFeatures parses a "|" separated feature string. Empty strings and
// the CoNLL-U placeholder "_" yield an empty set.
func ParseFeatures(morph string) Features {
	f := make(Features)
	morph = strings.TrimSpace(morph)
	if morph == "" || morph == "_" {
		return f
	}

	for _, part := range strings.Split(morph, "|") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || key == "" {
			continue
		}
		f[key] = append(f[key], strings.Split(value, ",")...)
	}
	return f
}

// Has reports whether key=value is present.
func (f Features) Has(key, value string) bool {
	for _, v := range f[key] {
		if v == value {
			return true
		}
	}
	return false
}

// Tagger analyses a single word into tokens.
type Tagger interface {
	// Analyze returns the tokens of word in order
	Analyze(ctx context.Context, word string) ([]Token, error)

	// Name returns the tagger name
	Name() string
}

// Config selects and configures a tagger.
type Config struct {
	Provider string // "udpipe" or "openai"

	UDPipeURL   string
	UDPipeModel string

	OpenAIKey   string
	OpenAIModel string
}

// DefaultConfig returns the UDPipe tagger with the public LINDAT service.
func DefaultConfig() *Config {
	return &Config{
		Provider:    "udpipe",
		UDPipeURL:   DefaultUDPipeURL,
		UDPipeModel: DefaultUDPipeModel,
		OpenAIModel: "gpt-4o-mini",
	}
}

// New creates the tagger named by config.Provider.
func New(config *Config) (Tagger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case "udpipe", "":
		return NewUDPipe(config.UDPipeURL, config.UDPipeModel), nil

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required for the openai tagger")
		}
		return NewOpenAITagger(config.OpenAIKey, config.OpenAIModel), nil

	default:
		return nil, fmt.Errorf("unknown tagger: %s", config.Provider)
	}
}
