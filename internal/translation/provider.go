package translation

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Provider names accepted by NewProvider.
const (
	ProviderDeepL          = "deepl"
	ProviderLibreTranslate = "libretranslate"
	ProviderGemini         = "gemini"
	ProviderMyMemory       = "mymemory"
	ProviderOpenAI         = "openai"
)

// Language codes passed to providers. Each provider maps them to its own
// dialect.
const (
	SourceLanguage = "es"
	TargetLanguage = "en"
)

// DefaultMultiProviders is the provider order used in multi mode.
var DefaultMultiProviders = []string{
	ProviderLibreTranslate,
	ProviderGemini,
	ProviderMyMemory,
	ProviderOpenAI,
}

const defaultHTTPTimeout = 30 * time.Second

// Provider translates a single word. Implementations classify every
// result into an Outcome instead of returning an error.
type Provider interface {
	Name() string
	Translate(ctx context.Context, word, source, target string) Outcome
}

// Config holds credentials and endpoints for every provider.
type Config struct {
	DeepLAuthKey      string
	DeepLURL          string
	LibreTranslateURL string
	LibreTranslateKey string
	MyMemoryEmail     string
	MyMemoryURL       string
	GeminiKey         string
	GeminiModel       string
	OpenAIKey         string
	OpenAIModel       string
}

// NewProvider builds the named provider from config. Missing credentials
// are reported here so a misconfigured run fails before any lookups.
func NewProvider(ctx context.Context, name string, config *Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ProviderDeepL:
		if config.DeepLAuthKey == "" {
			return nil, fmt.Errorf("DeepL auth key not found")
		}
		return NewDeepL(config.DeepLAuthKey, config.DeepLURL), nil
	case ProviderLibreTranslate:
		return NewLibreTranslate(config.LibreTranslateURL, config.LibreTranslateKey), nil
	case ProviderMyMemory:
		return NewMyMemory(config.MyMemoryURL, config.MyMemoryEmail), nil
	case ProviderGemini:
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key not found")
		}
		return NewGemini(ctx, config.GeminiKey, config.GeminiModel, "")
	case ProviderOpenAI:
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key not found")
		}
		return NewOpenAI(config.OpenAIKey, config.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", name)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}
