package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile         string
	InputFile       string
	OutputFile      string
	Processed       bool
	SkipTranslation bool
	ArchivePrevious bool
	Debug           bool
	LogFormat       string
	ListModels      bool
	ProgressEvery   int

	// Filter flags
	MinSpanishConfidence float64

	// Tagger flags
	Tagger      string
	UDPipeURL   string
	UDPipeModel string

	// Translation flags
	Mode              string
	Providers         []string
	LibreTranslateURL string
	MyMemoryEmail     string
	GeminiModel       string
	OpenAIModel       string

	// Anki flags
	GenerateAnki bool
	AnkiCSV      bool
	DeckName     string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		OutputFile:           "result.csv",
		LogFormat:            "text",
		ProgressEvery:        5000,
		MinSpanishConfidence: 0.07,
		Tagger:               "udpipe",
		UDPipeURL:            "https://lindat.mff.cuni.cz/services/udpipe/api/process",
		UDPipeModel:          "spanish",
		Mode:                 "single",
		Providers:            []string{"libretranslate", "gemini", "mymemory", "openai"},
		LibreTranslateURL:    "https://libretranslate.com",
		GeminiModel:          "gemini-2.0-flash",
		OpenAIModel:          "gpt-4o-mini",
		DeckName:             "Spanish Vocabulary",
	}
}
