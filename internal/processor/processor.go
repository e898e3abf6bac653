package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/snonux/palabras/internal"
	"codeberg.org/snonux/palabras/internal/anki"
	"codeberg.org/snonux/palabras/internal/archive"
	"codeberg.org/snonux/palabras/internal/batch"
	"codeberg.org/snonux/palabras/internal/cli"
	"codeberg.org/snonux/palabras/internal/dictionary"
	"codeberg.org/snonux/palabras/internal/lexical"
	"codeberg.org/snonux/palabras/internal/morph"
	"codeberg.org/snonux/palabras/internal/tagger"
	"codeberg.org/snonux/palabras/internal/translation"
)

// DebugWords replaces the filtered word list in debug mode.
var DebugWords = []string{"bueno", "gato", "como", "de", "a", "Harry", "Potter", "comer"}

// Dependencies are the external collaborators of a run.
type Dependencies struct {
	Detector lexical.Detector
	Tagger   tagger.Tagger
	Resolver *translation.Resolver // nil when translation is skipped
	Logger   *slog.Logger
	Out      io.Writer // stage banners and progress
}

// NewDependencies builds the real collaborators for config. Collaborators
// the configured mode never calls are left nil.
func NewDependencies(ctx context.Context, config cli.Config, log *slog.Logger) (Dependencies, error) {
	deps := Dependencies{Logger: log, Out: os.Stdout}

	if !config.InputProcessed {
		deps.Detector = lexical.NewLinguaDetector()

		t, err := tagger.New(config.TaggerConfig())
		if err != nil {
			return Dependencies{}, fmt.Errorf("failed to create tagger: %w", err)
		}
		deps.Tagger = t
	}

	if !config.SkipTranslation {
		resolver, err := translation.NewResolver(ctx, config.TranslationMode, config.Providers, config.TranslationConfig(), log)
		if err != nil {
			return Dependencies{}, fmt.Errorf("failed to create translation resolver (set DEEPL_AUTH_KEY, use --mode multi or pass --skip-translation): %w", err)
		}
		deps.Resolver = resolver
	}

	return deps, nil
}

// Summary describes a finished run.
type Summary struct {
	Words          int // lines read from the word list
	Admitted       int // words passing the lexical filter
	Rejected       int
	TaggerFailures int
	Entries        int
	Translated     int
	Skipped        int // malformed processed rows
	OutputFile     string
	ArchivedTo     string
	AnkiFile       string
	Elapsed        time.Duration
}

// Processor runs the pipeline once.
type Processor struct {
	config cli.Config
	deps   Dependencies
	log    *slog.Logger
	out    io.Writer
}

// NewProcessor creates a processor for config.
func NewProcessor(config cli.Config, deps Dependencies) *Processor {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	return &Processor{
		config: config,
		deps:   deps,
		log:    log.With("stage", "processor"),
		out:    out,
	}
}

// Run executes every stage and writes the result file.
func (p *Processor) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	summary := Summary{OutputFile: p.config.OutputFile}

	var (
		entries []dictionary.Entry
		err     error
	)
	if p.config.InputProcessed {
		entries, err = p.loadProcessed(&summary)
	} else {
		entries, err = p.buildEntries(ctx, &summary)
	}
	if err != nil {
		return summary, err
	}
	summary.Entries = len(entries)

	if !p.config.SkipTranslation {
		if err := p.translate(ctx, entries, &summary); err != nil {
			return summary, err
		}
	}

	if p.config.InputProcessed {
		dictionary.SortByWord(entries)
	}

	if err := p.writeResult(entries, &summary); err != nil {
		return summary, err
	}

	if p.config.GenerateAnki {
		path, err := p.exportAnki(entries)
		if err != nil {
			return summary, err
		}
		summary.AnkiFile = path
		fmt.Fprintf(p.out, "Anki deck written to %s\n", path)
	}

	summary.Elapsed = time.Since(start)
	p.log.Info("dictionary written",
		slog.String("file", summary.OutputFile),
		slog.Int("entries", summary.Entries),
		slog.Int("admitted", summary.Admitted),
		slog.Int("rejected", summary.Rejected),
		slog.Int("translated", summary.Translated),
		slog.Duration("elapsed", summary.Elapsed),
	)

	return summary, nil
}

func (p *Processor) loadProcessed(summary *Summary) ([]dictionary.Entry, error) {
	fmt.Fprintf(p.out, "Loading processed file %s...\n", p.config.InputFile)

	entries, load, err := batch.LoadProcessed(p.config.InputFile, p.log)
	if err != nil {
		return nil, err
	}
	summary.Skipped = load.Skipped
	return entries, nil
}

// buildEntries reads, filters, tags and ranks the raw word list.
func (p *Processor) buildEntries(ctx context.Context, summary *Summary) ([]dictionary.Entry, error) {
	if p.deps.Detector == nil || p.deps.Tagger == nil {
		return nil, errors.New("word list processing needs a detector and a tagger")
	}

	words, err := batch.ReadWordList(p.config.InputFile)
	if err != nil {
		return nil, err
	}
	summary.Words = len(words)

	admitted := p.filter(words, summary)
	if p.config.Debug {
		p.log.Debug("using debug word list", slog.Int("replaced", len(admitted)))
		admitted = append([]string(nil), DebugWords...)
	}

	entries, err := p.tag(ctx, admitted, summary)
	if err != nil {
		return nil, err
	}

	dictionary.AssignPrevalence(entries)
	return entries, nil
}

func (p *Processor) filter(words []string, summary *Summary) []string {
	fmt.Fprintf(p.out, "Filtering %d words...\n", len(words))

	opts := lexical.DefaultOptions()
	opts.MinSpanishConfidence = p.config.MinSpanishConfidence
	filter := lexical.NewFilter(p.deps.Detector, opts, p.log)

	bar := newProgress(p.out, p.config.ProgressEvery, len(words))
	var admitted []string
	for _, word := range words {
		if w, ok := filter.Admit(word); ok {
			admitted = append(admitted, w)
		} else {
			summary.Rejected++
		}
		bar.Step()
	}
	summary.Admitted = len(admitted)
	return admitted
}

// tag analyses every word and keeps the base forms. A word the tagger
// fails on is logged and skipped; the run fails only when every word did.
func (p *Processor) tag(ctx context.Context, words []string, summary *Summary) ([]dictionary.Entry, error) {
	fmt.Fprintf(p.out, "Tagging %d words with %s...\n", len(words), p.deps.Tagger.Name())

	bar := newProgress(p.out, p.config.ProgressEvery, len(words))
	var (
		entries []dictionary.Entry
		lastErr error
	)
	for _, word := range words {
		tokens, err := p.deps.Tagger.Analyze(ctx, word)
		if err != nil {
			summary.TaggerFailures++
			lastErr = err
			p.log.Warn("tagging failed", slog.String("word", word), slog.Any("error", err))
		} else {
			entries = append(entries, morph.ClassifyAll(tokens)...)
		}
		bar.Step()
	}

	if len(words) > 0 && summary.TaggerFailures == len(words) {
		return nil, fmt.Errorf("tagging failed for every word: %w", lastErr)
	}
	return entries, nil
}

func (p *Processor) translate(ctx context.Context, entries []dictionary.Entry, summary *Summary) error {
	if p.deps.Resolver == nil {
		return errors.New("translation requested without a resolver")
	}
	providers := p.deps.Resolver.Providers()
	p.log.Info("translating", slog.String("mode", string(p.deps.Resolver.Mode())), slog.Any("providers", providers))
	fmt.Fprintf(p.out, "Translating %d entries (%s mode: %s)...\n",
		len(entries), p.deps.Resolver.Mode(), strings.Join(providers, ", "))

	bar := newProgress(p.out, p.config.ProgressEvery, len(entries))
	for i := range entries {
		entries[i].Translation = p.deps.Resolver.Resolve(ctx, entries[i].Word)
		if entries[i].Translation != "" {
			summary.Translated++
		}
		bar.Step()
	}
	return nil
}

func (p *Processor) writeResult(entries []dictionary.Entry, summary *Summary) error {
	if p.config.ArchivePrevious {
		archived, err := archive.ArchiveResult(p.config.OutputFile)
		if err != nil {
			return fmt.Errorf("failed to archive previous result: %w", err)
		}
		if archived != "" {
			summary.ArchivedTo = archived
			p.log.Info("archived previous result", slog.String("path", archived))
		}
	}

	fmt.Fprintf(p.out, "Writing %d entries to %s...\n", len(entries), p.config.OutputFile)
	return dictionary.WriteFile(p.config.OutputFile, entries)
}

// exportAnki writes the deck next to the result file and returns its path.
func (p *Processor) exportAnki(entries []dictionary.Entry) (string, error) {
	dir := filepath.Dir(p.config.OutputFile)

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputPath:     filepath.Join(dir, "anki_import.csv"),
		IncludeHeaders: true,
	})
	gen.AddEntries(entries)

	total, translated := gen.Stats()
	p.log.Debug("anki export", slog.Int("cards", total), slog.Int("translated", translated))

	if p.config.AnkiCSV {
		if err := gen.GenerateCSV(); err != nil {
			return "", fmt.Errorf("failed to generate Anki CSV: %w", err)
		}
		return filepath.Join(dir, "anki_import.csv"), nil
	}

	path := filepath.Join(dir, internal.SanitizeFilename(p.config.DeckName)+".apkg")
	if err := gen.GenerateAPKG(path, p.config.DeckName); err != nil {
		return "", fmt.Errorf("failed to generate Anki package: %w", err)
	}
	return path, nil
}
