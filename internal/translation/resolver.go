package translation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Mode selects the resolution strategy.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSingle:
		return ModeSingle, nil
	case ModeMulti:
		return ModeMulti, nil
	}
	return "", fmt.Errorf("unknown translation mode %q (want %q or %q)", s, ModeSingle, ModeMulti)
}

const (
	// MaxMultiProviders bounds how many providers multi mode consults.
	MaxMultiProviders = 4
	// MaxTranslationWords drops answers longer than a short phrase.
	MaxTranslationWords = 4
	// Separator joins multi mode translations.
	Separator = ", "
)

// Resolver turns a Spanish word into its English translation string.
// Provider failures are logged and never returned.
type Resolver struct {
	mode      Mode
	providers []Provider
	cache     *TranslationCache
	log       *slog.Logger
}

// NewSingleResolver asks one authoritative provider.
func NewSingleResolver(p Provider, log *slog.Logger) *Resolver {
	return newResolver(ModeSingle, []Provider{p}, log)
}

// NewMultiResolver aggregates providers in the given order.
func NewMultiResolver(providers []Provider, log *slog.Logger) (*Resolver, error) {
	if len(providers) > MaxMultiProviders {
		return nil, fmt.Errorf("multi mode supports at most %d providers, got %d", MaxMultiProviders, len(providers))
	}
	return newResolver(ModeMulti, providers, log), nil
}

func newResolver(mode Mode, providers []Provider, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		mode:      mode,
		providers: providers,
		cache:     NewTranslationCache(),
		log:       log.With("stage", "translation", "mode", string(mode)),
	}
}

// Mode returns the resolver's strategy.
func (r *Resolver) Mode() Mode { return r.mode }

// Providers returns the provider names in query order.
func (r *Resolver) Providers() []string {
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}
	return names
}

// Cache exposes the run's translation cache.
func (r *Resolver) Cache() *TranslationCache { return r.cache }

// Resolve returns the translation for word, or "" when nothing usable was
// found.
func (r *Resolver) Resolve(ctx context.Context, word string) string {
	if cached, ok := r.cache.Get(word); ok {
		return cached
	}

	var result string
	if r.mode == ModeSingle {
		result = r.resolveSingle(ctx, word)
	} else {
		result = r.resolveMulti(ctx, word)
	}

	r.cache.Add(word, result)
	return result
}

func (r *Resolver) resolveSingle(ctx context.Context, word string) string {
	if len(r.providers) == 0 {
		return ""
	}
	outcome := r.call(ctx, r.providers[0], word)
	if !outcome.OK() {
		return ""
	}
	return outcome.Text()
}

func (r *Resolver) resolveMulti(ctx context.Context, word string) string {
	var translations []string

	for _, p := range r.providers {
		outcome := r.call(ctx, p, word)
		if !outcome.OK() {
			continue
		}

		for _, candidate := range outcome.Texts {
			text := Normalize(candidate)
			// Compared with the word as given, not lowercased
			if text == "" || text == word {
				continue
			}
			if n := len(strings.Fields(text)); n > MaxTranslationWords {
				r.log.Debug("dropped long translation",
					slog.String("provider", p.Name()),
					slog.String("word", word),
					slog.String("translation", text),
					slog.Int("words", n),
				)
				continue
			}
			translations = appendUnique(translations, text)
		}
	}

	return strings.TrimSuffix(strings.Join(translations, Separator), Separator)
}

// call runs one provider and logs the outcome with its duration.
func (r *Resolver) call(ctx context.Context, p Provider, word string) Outcome {
	start := time.Now()
	outcome := p.Translate(ctx, word, SourceLanguage, TargetLanguage)
	elapsed := time.Since(start)

	switch outcome.Kind {
	case KindOK:
		r.log.Debug("translated",
			slog.String("provider", p.Name()),
			slog.String("word", word),
			slog.Any("translations", outcome.Texts),
			slog.Duration("elapsed", elapsed),
		)
	case KindNotFound:
		r.log.Debug("no translation",
			slog.String("provider", p.Name()),
			slog.String("word", word),
			slog.Duration("elapsed", elapsed),
		)
	default:
		r.log.Warn("translation failed",
			slog.String("provider", p.Name()),
			slog.String("word", word),
			slog.Duration("elapsed", elapsed),
			slog.Any("error", outcome.Err),
		)
	}
	return outcome
}

// Normalize trims and lowercases a translation for comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

// BuildProviders constructs the named providers in order, each behind a
// circuit breaker. Providers that cannot be built, usually for missing
// credentials, are skipped with a warning.
func BuildProviders(ctx context.Context, names []string, config *Config, log *slog.Logger) []Provider {
	if log == nil {
		log = slog.Default()
	}

	var providers []Provider
	for _, name := range names {
		p, err := NewProvider(ctx, name, config)
		if err != nil {
			log.Warn("skipping translation provider",
				slog.String("provider", name),
				slog.Any("error", err),
			)
			continue
		}
		providers = append(providers, WithBreaker(p, DefaultBreakerSettings(), log))
	}
	return providers
}

// NewResolver builds the resolver for mode from config. Single mode needs
// DeepL; multi mode uses names, or DefaultMultiProviders when empty.
func NewResolver(ctx context.Context, mode Mode, names []string, config *Config, log *slog.Logger) (*Resolver, error) {
	switch mode {
	case ModeSingle:
		p, err := NewProvider(ctx, ProviderDeepL, config)
		if err != nil {
			return nil, err
		}
		return NewSingleResolver(WithBreaker(p, DefaultBreakerSettings(), log), log), nil
	case ModeMulti:
		if len(names) == 0 {
			names = DefaultMultiProviders
		}
		providers := BuildProviders(ctx, names, config, log)
		if len(providers) == 0 {
			return nil, fmt.Errorf("no translation provider could be configured from %v", names)
		}
		return NewMultiResolver(providers, log)
	default:
		return nil, fmt.Errorf("unknown translation mode %q", mode)
	}
}
