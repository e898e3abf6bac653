package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"codeberg.org/snonux/palabras/internal/tagger"
	"codeberg.org/snonux/palabras/internal/translation"
)

// Config is the resolved run configuration. It is built once by
// LoadConfig and passed by value afterwards.
type Config struct {
	Debug           bool
	LogFormat       string
	SkipTranslation bool
	TranslationMode translation.Mode
	InputProcessed  bool
	InputFile       string
	OutputFile      string
	ArchivePrevious bool
	ListModels      bool
	ProgressEvery   int

	MinSpanishConfidence float64

	Tagger      string
	UDPipeURL   string
	UDPipeModel string

	DeepLAuthKey      string
	OpenAIKey         string
	OpenAIModel       string
	GeminiKey         string
	GeminiModel       string
	LibreTranslateURL string
	LibreTranslateKey string
	MyMemoryEmail     string
	Providers         []string

	GenerateAnki bool
	AnkiCSV      bool
	DeckName     string
}

// LoadConfig merges flags, config file and environment. A positional
// argument overrides the input file.
func LoadConfig(flags *Flags, args []string) (Config, error) {
	mode, err := translation.ParseMode(stringOr("translation.mode", flags.Mode))
	if err != nil {
		return Config{}, err
	}

	config := Config{
		Debug:                boolOr("debug", flags.Debug),
		LogFormat:            stringOr("log.format", flags.LogFormat),
		SkipTranslation:      boolOr("translation.skip", flags.SkipTranslation),
		TranslationMode:      mode,
		InputProcessed:       boolOr("input.processed", flags.Processed),
		InputFile:            stringOr("input.file", flags.InputFile),
		OutputFile:           stringOr("output.file", flags.OutputFile),
		ArchivePrevious:      boolOr("output.archive_previous", flags.ArchivePrevious),
		ListModels:           flags.ListModels,
		ProgressEvery:        intOr("progress.every", flags.ProgressEvery),
		MinSpanishConfidence: floatOr("filter.min_spanish_confidence", flags.MinSpanishConfidence),
		Tagger:               stringOr("tagger.provider", flags.Tagger),
		UDPipeURL:            stringOr("tagger.udpipe_url", flags.UDPipeURL),
		UDPipeModel:          stringOr("tagger.udpipe_model", flags.UDPipeModel),
		DeepLAuthKey:         GetDeepLAuthKey(),
		OpenAIKey:            GetOpenAIKey(),
		OpenAIModel:          stringOr("openai.model", flags.OpenAIModel),
		GeminiKey:            GetGeminiKey(),
		GeminiModel:          stringOr("translation.gemini_model", flags.GeminiModel),
		LibreTranslateURL:    stringOr("translation.libretranslate_url", flags.LibreTranslateURL),
		LibreTranslateKey:    GetLibreTranslateKey(),
		MyMemoryEmail:        stringOr("translation.mymemory_email", flags.MyMemoryEmail),
		Providers:            providersOr(flags.Providers),
		GenerateAnki:         boolOr("anki.generate", flags.GenerateAnki),
		AnkiCSV:              boolOr("anki.csv", flags.AnkiCSV),
		DeckName:             stringOr("anki.deck_name", flags.DeckName),
	}

	if len(args) > 0 {
		config.InputFile = args[0]
	}

	return config, config.Validate()
}

// Validate rejects configurations that cannot run.
func (c Config) Validate() error {
	if c.ListModels {
		return nil
	}
	if c.InputFile == "" {
		return fmt.Errorf("no input file given")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("no output file given")
	}
	if c.TranslationMode != translation.ModeSingle && c.TranslationMode != translation.ModeMulti {
		return fmt.Errorf("unknown translation mode %q", c.TranslationMode)
	}
	if len(c.Providers) > translation.MaxMultiProviders {
		return fmt.Errorf("at most %d providers can be queried, got %d", translation.MaxMultiProviders, len(c.Providers))
	}
	switch c.Tagger {
	case "udpipe", "openai":
	default:
		return fmt.Errorf("unknown tagger %q", c.Tagger)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.MinSpanishConfidence < 0 || c.MinSpanishConfidence > 1 {
		return fmt.Errorf("min spanish confidence must be within [0,1], got %v", c.MinSpanishConfidence)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("progress interval must not be negative")
	}
	return nil
}

// TaggerConfig returns the tagger settings.
func (c Config) TaggerConfig() *tagger.Config {
	return &tagger.Config{
		Provider:    c.Tagger,
		UDPipeURL:   c.UDPipeURL,
		UDPipeModel: c.UDPipeModel,
		OpenAIKey:   c.OpenAIKey,
		OpenAIModel: c.OpenAIModel,
	}
}

// TranslationConfig returns the provider credentials and endpoints.
func (c Config) TranslationConfig() *translation.Config {
	return &translation.Config{
		DeepLAuthKey:      c.DeepLAuthKey,
		LibreTranslateURL: c.LibreTranslateURL,
		LibreTranslateKey: c.LibreTranslateKey,
		MyMemoryEmail:     c.MyMemoryEmail,
		GeminiKey:         c.GeminiKey,
		GeminiModel:       c.GeminiModel,
		OpenAIKey:         c.OpenAIKey,
		OpenAIModel:       c.OpenAIModel,
	}
}

// The helpers prefer a viper value (config file, environment or a changed
// flag) over the flag value.

func stringOr(key, fallback string) string {
	if viper.IsSet(key) {
		if v := viper.GetString(key); v != "" {
			return v
		}
	}
	return fallback
}

func boolOr(key string, fallback bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return fallback
}

func floatOr(key string, fallback float64) float64 {
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	return fallback
}

func providersOr(fallback []string) []string {
	providers := fallback
	if viper.IsSet("translation.providers") {
		if v := viper.GetStringSlice("translation.providers"); len(v) > 0 {
			providers = v
		}
	}

	var cleaned []string
	for _, p := range providers {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return cleaned
}
