package processor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/palabras/internal/cli"
	"codeberg.org/snonux/palabras/internal/dictionary"
	"codeberg.org/snonux/palabras/internal/logging"
	"codeberg.org/snonux/palabras/internal/tagger"
	"codeberg.org/snonux/palabras/internal/testutil"
	"codeberg.org/snonux/palabras/internal/translation"
)

func newTestTagger() *testutil.MockTagger {
	return &testutil.MockTagger{
		Tokens: map[string][]tagger.Token{
			"gato":     {testutil.Token("gato", "NOUN", "Gender=Masc|Number=Sing")},
			"casas":    {testutil.Token("casas", "NOUN", "Gender=Fem|Number=Plur")},
			"hablaban": {testutil.Token("hablaban", "VERB", "Mood=Ind|Number=Plur|Person=3|Tense=Imp")},
			"comer":    {testutil.Token("comer", "VERB", "VerbForm=Inf")},
			"de":       {testutil.Token("de", "ADP", "")},
		},
	}
}

func newTestDetector() *testutil.MockDetector {
	return &testutil.MockDetector{Default: 0.9, Scores: map[string]float64{"hello": 0.01}}
}

func newTestResolver(translations map[string]string) *translation.Resolver {
	provider := &testutil.MockProvider{ProviderName: "deepl", Translations: translations}
	return translation.NewSingleResolver(provider, logging.Discard())
}

func newTestConfig(dir, input string) cli.Config {
	return cli.Config{
		InputFile:            input,
		OutputFile:           filepath.Join(dir, dictionary.DefaultFileName),
		TranslationMode:      translation.ModeSingle,
		MinSpanishConfidence: 0.07,
		DeckName:             "Spanish Vocabulary",
		LogFormat:            "text",
		Tagger:               "udpipe",
	}
}

func TestRunWordList(t *testing.T) {
	dir := t.TempDir()
	input := testutil.CreateWordList(t, dir,
		"gato,5120", "123", "casas", "hello", "hablaban", "coméis", "comer", "de")

	config := newTestConfig(dir, input)
	deps := Dependencies{
		Detector: newTestDetector(),
		Tagger:   newTestTagger(),
		Resolver: newTestResolver(map[string]string{"gato": "cat", "comer": "eat"}),
		Logger:   logging.Discard(),
	}

	summary, err := NewProcessor(config, deps).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, summary.Words)
	assert.Equal(t, 5, summary.Admitted)
	assert.Equal(t, 3, summary.Rejected)
	assert.Equal(t, 3, summary.Entries)
	assert.Equal(t, 2, summary.Translated)

	entries, err := dictionary.ReadFile(config.OutputFile)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, dictionary.Entry{
		Word: "gato", Translation: "cat", Prevalence: 0.67,
		Gender: dictionary.GenderMasculine, PartOfSpeech: dictionary.PartOfSpeechNoun,
	}, entries[0])
	assert.Equal(t, "comer", entries[1].Word)
	assert.Equal(t, 0.33, entries[1].Prevalence)
	assert.Equal(t, "de", entries[2].Word)
	assert.Equal(t, "", entries[2].Translation)
	assert.Equal(t, 0.0, entries[2].Prevalence)
}

func TestRunAnnouncesProviders(t *testing.T) {
	dir := t.TempDir()
	input := testutil.CreateWordList(t, dir, "gato")

	var out bytes.Buffer
	deps := Dependencies{
		Detector: newTestDetector(),
		Tagger:   newTestTagger(),
		Resolver: newTestResolver(map[string]string{"gato": "cat"}),
		Logger:   logging.Discard(),
		Out:      &out,
	}

	_, err := NewProcessor(newTestConfig(dir, input), deps).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Translating 1 entries (single mode: deepl)")
}

func TestNewDependenciesMissingDeepLKey(t *testing.T) {
	config := newTestConfig(t.TempDir(), "unused.csv")
	config.InputProcessed = true

	_, err := NewDependencies(context.Background(), config, logging.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--skip-translation")

	config.SkipTranslation = true
	deps, err := NewDependencies(context.Background(), config, logging.Discard())
	require.NoError(t, err)
	assert.Nil(t, deps.Resolver)
}

func TestRunSkipTranslation(t *testing.T) {
	dir := t.TempDir()
	input := testutil.CreateWordList(t, dir, "gato", "comer")

	config := newTestConfig(dir, input)
	config.SkipTranslation = true

	summary, err := NewProcessor(config, Dependencies{
		Detector: newTestDetector(),
		Tagger:   newTestTagger(),
		Logger:   logging.Discard(),
	}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Translated)

	entries, err := dictionary.ReadFile(config.OutputFile)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Empty(t, e.Translation)
	}
}

func TestRunTranslationWithoutResolver(t *testing.T) {
	dir := t.TempDir()
	input := testutil.CreateWordList(t, dir, "gato")

	_, err := NewProcessor(newTestConfig(dir, input), Dependencies{
		Detector: newTestDetector(),
		Tagger:   newTestTagger(),
		Logger:   logging.Discard(),
	}).Run(context.Background())
	assert.Error(t, err)
}

func TestRunProcessedFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "processed.csv")
	testutil.CreateTestFile(t, input, []byte(
		"zapato,M,NOUN,shoe,boot,,\n"+
			"short,row\n"+
			"agua,F,NOUN,water,,,\n"))

	config := newTestConfig(dir, input)
	config.InputProcessed = true

	deps := Dependencies{
		Resolver: newTestResolver(map[string]string{"agua": "water"}),
		Logger:   logging.Discard(),
	}

	summary, err := NewProcessor(config, deps).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Entries)

	entries, err := dictionary.ReadFile(config.OutputFile)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Sorted by word; prevalence follows the input row order.
	assert.Equal(t, "agua", entries[0].Word)
	assert.Equal(t, 0.0, entries[0].Prevalence)
	assert.Equal(t, "water", entries[0].Translation)
	assert.Equal(t, dictionary.GenderFeminine, entries[0].Gender)

	// Existing translations are replaced by the resolver result.
	assert.Equal(t, "zapato", entries[1].Word)
	assert.Equal(t, 0.5, entries[1].Prevalence)
	assert.Equal(t, "", entries[1].Translation)
}

func TestRunProcessedKeepsTranslationsWhenSkipped(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "processed.csv")
	testutil.CreateTestFile(t, input, []byte("zapato,M,NOUN,shoe,boot,,shoe\n"))

	config := newTestConfig(dir, input)
	config.InputProcessed = true
	config.SkipTranslation = true

	_, err := NewProcessor(config, Dependencies{Logger: logging.Discard()}).Run(context.Background())
	require.NoError(t, err)

	entries, err := dictionary.ReadFile(config.OutputFile)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shoe, boot", entries[0].Translation)
}

func TestRunDebugWordList(t *testing.T) {
	dir := t.TempDir()
	input := testutil.CreateWordList(t, dir, "casas", "hablaban")

	config := newTestConfig(dir, input)
	config.Debug = true
	config.SkipTranslation = true

	tg := newTestTagger()
	_, err := NewProcessor(config, Dependencies{
		Detector: newTestDetector(),
		Tagger:   tg,
		Logger:   logging.Discard(),
	}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, DebugWords, tg.Calls)
}

func TestRunProgress(t *testing.T) {
	dir := t.TempDir()
	input := testutil.CreateWordList(t, dir, "gato", "comer", "de", "casas")

	config := newTestConfig(dir, input)
	config.SkipTranslation = true
	config.ProgressEvery = 1

	var out bytes.Buffer
	_, err := NewProcessor(config, Dependencies{
		Detector: newTestDetector(),
		Tagger:   newTestTagger(),
		Logger:   logging.Discard(),
		Out:      &out,
	}).Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Filtering 4 words...\n25%\n50%\n75%\n100%\n")
	assert.Contains(t, out.String(), "Tagging 4 words with mock...\n25%\n50%\n75%\n100%\n")
}

func TestRunTaggerFailures(t *testing.T) {
	dir := t.TempDir()
	input := testutil.CreateWordList(t, dir, "gato", "comer")

	t.Run("some words", func(t *testing.T) {
		tg := newTestTagger()
		tg.Errors = map[string]error{"gato": tagger.ErrTagger}

		config := newTestConfig(dir, input)
		config.SkipTranslation = true

		summary, err := NewProcessor(config, Dependencies{
			Detector: newTestDetector(),
			Tagger:   tg,
			Logger:   logging.Discard(),
		}).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, summary.TaggerFailures)
		assert.Equal(t, 1, summary.Entries)
	})

	t.Run("every word", func(t *testing.T) {
		tg := newTestTagger()
		tg.Errors = map[string]error{"gato": tagger.ErrTagger, "comer": tagger.ErrTagger}

		config := newTestConfig(dir, input)
		config.OutputFile = filepath.Join(dir, "failed.csv")
		config.SkipTranslation = true

		_, err := NewProcessor(config, Dependencies{
			Detector: newTestDetector(),
			Tagger:   tg,
			Logger:   logging.Discard(),
		}).Run(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, tagger.ErrTagger))
		testutil.AssertFileNotExists(t, config.OutputFile)
	})
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	config := newTestConfig(dir, filepath.Join(dir, "missing.txt"))

	_, err := NewProcessor(config, Dependencies{
		Detector: newTestDetector(),
		Tagger:   newTestTagger(),
		Logger:   logging.Discard(),
	}).Run(context.Background())
	require.Error(t, err)
	testutil.AssertFileNotExists(t, config.OutputFile)
}

func TestRunArchivePrevious(t *testing.T) {
	dir := t.TempDir()
	input := testutil.CreateWordList(t, dir, "gato")

	config := newTestConfig(dir, input)
	config.SkipTranslation = true
	config.ArchivePrevious = true
	testutil.CreateTestFile(t, config.OutputFile, []byte("old result\n"))

	summary, err := NewProcessor(config, Dependencies{
		Detector: newTestDetector(),
		Tagger:   newTestTagger(),
		Logger:   logging.Discard(),
	}).Run(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, summary.ArchivedTo)
	testutil.AssertFileContains(t, summary.ArchivedTo, "old result")
	testutil.AssertFileContains(t, config.OutputFile, "gato")
}

func TestRunAnkiExport(t *testing.T) {
	tests := []struct {
		name string
		csv  bool
		want string
	}{
		{"csv", true, "anki_import.csv"},
		{"package", false, "Mi_Vocabulario.apkg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := testutil.CreateWordList(t, dir, "gato", "comer")

			config := newTestConfig(dir, input)
			config.GenerateAnki = true
			config.AnkiCSV = tt.csv
			config.DeckName = "Mi Vocabulario"

			summary, err := NewProcessor(config, Dependencies{
				Detector: newTestDetector(),
				Tagger:   newTestTagger(),
				Resolver: newTestResolver(map[string]string{"gato": "cat"}),
				Logger:   logging.Discard(),
			}).Run(context.Background())
			require.NoError(t, err)

			want := filepath.Join(dir, tt.want)
			assert.Equal(t, want, summary.AnkiFile)
			_, err = os.Stat(want)
			assert.NoError(t, err)
		})
	}
}

func TestProgressStep(t *testing.T) {
	tests := []struct {
		name  string
		every int
		total int
		want  string
	}{
		{"every item", 1, 2, "50%\n100%\n"},
		{"every second item", 2, 5, "40%\n80%\n"},
		{"disabled", 0, 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			bar := newProgress(&out, tt.every, tt.total)
			for i := 0; i < tt.total; i++ {
				bar.Step()
			}
			assert.Equal(t, tt.want, out.String())
		})
	}
}
