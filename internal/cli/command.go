package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/palabras/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "palabras [word-list]",
		Short: "Spanish Frequency Dictionary Builder",
		Long: `palabras builds a frequency-ranked Spanish to English vocabulary
dictionary from a word list ordered by frequency.

Words are filtered, tagged for part of speech and morphology, ranked by
position and translated with DeepL or a set of translation providers.

Examples:
  palabras es_50k.txt                          # Build result.csv from a word list
  palabras --mode multi es_50k.txt             # Aggregate several providers
  palabras --processed --skip-translation old.csv  # Re-rank a processed dictionary
  palabras --anki es_50k.txt                   # Also export an Anki deck`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.palabras.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.InputFile, "input", "i", "", "Input word list (or processed dictionary with --processed)")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", flags.OutputFile, "Output CSV file")
	cmd.Flags().BoolVar(&flags.Processed, "processed", false, "Input is an already processed dictionary to re-rank and merge")
	cmd.Flags().BoolVar(&flags.SkipTranslation, "skip-translation", false, "Skip the translation stage")
	cmd.Flags().BoolVar(&flags.ArchivePrevious, "archive-previous", false, "Archive an existing output file instead of deleting it")
	cmd.Flags().BoolVarP(&flags.Debug, "debug", "d", false, "Debug logging and the built-in sample word list")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().IntVar(&flags.ProgressEvery, "progress-every", flags.ProgressEvery, "Print progress every N items")

	// Filter flags
	cmd.Flags().Float64Var(&flags.MinSpanishConfidence, "min-spanish-confidence", flags.MinSpanishConfidence, "Spanish confidence a word must exceed")

	// Tagger flags
	cmd.Flags().StringVar(&flags.Tagger, "tagger", flags.Tagger, "Morphological tagger: udpipe or openai")
	cmd.Flags().StringVar(&flags.UDPipeURL, "udpipe-url", flags.UDPipeURL, "UDPipe REST endpoint")
	cmd.Flags().StringVar(&flags.UDPipeModel, "udpipe-model", flags.UDPipeModel, "UDPipe model name")

	// Translation flags
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", flags.Mode, "Translation mode: single (DeepL) or multi")
	cmd.Flags().StringSliceVar(&flags.Providers, "providers", flags.Providers, "Providers queried in multi mode, in order")
	cmd.Flags().StringVar(&flags.LibreTranslateURL, "libretranslate-url", flags.LibreTranslateURL, "LibreTranslate server")
	cmd.Flags().StringVar(&flags.MyMemoryEmail, "mymemory-email", "", "Contact email sent to MyMemory for a higher quota")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for translation")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model for translation and tagging")

	// Anki flags
	cmd.Flags().BoolVar(&flags.GenerateAnki, "anki", false, "Generate Anki import file (APKG format by default, use --anki-csv for CSV)")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Generate CSV format instead of APKG when using --anki")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

// viperKeys maps flag names to their config file keys.
var viperKeys = map[string]string{
	"input":                  "input.file",
	"processed":              "input.processed",
	"output":                 "output.file",
	"archive-previous":       "output.archive_previous",
	"skip-translation":       "translation.skip",
	"mode":                   "translation.mode",
	"providers":              "translation.providers",
	"libretranslate-url":     "translation.libretranslate_url",
	"mymemory-email":         "translation.mymemory_email",
	"gemini-model":           "translation.gemini_model",
	"openai-model":           "openai.model",
	"tagger":                 "tagger.provider",
	"udpipe-url":             "tagger.udpipe_url",
	"udpipe-model":           "tagger.udpipe_model",
	"min-spanish-confidence": "filter.min_spanish_confidence",
	"progress-every":         "progress.every",
	"debug":                  "debug",
	"log-format":             "log.format",
	"anki":                   "anki.generate",
	"anki-csv":               "anki.csv",
	"deck-name":              "anki.deck_name",
}

func bindFlagsToViper(cmd *cobra.Command) {
	for flag, key := range viperKeys {
		_ = viper.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".palabras" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".palabras")
	}

	// Environment variables
	viper.SetEnvPrefix("PALABRAS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("openai.api_key")
}

// GetDeepLAuthKey retrieves the DeepL auth key from environment or config
func GetDeepLAuthKey() string {
	if key := os.Getenv("DEEPL_AUTH_KEY"); key != "" {
		return key
	}
	return viper.GetString("translation.deepl_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translation.gemini_key")
}

// GetLibreTranslateKey retrieves the optional LibreTranslate API key
func GetLibreTranslateKey() string {
	if key := os.Getenv("LIBRETRANSLATE_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translation.libretranslate_key")
}
