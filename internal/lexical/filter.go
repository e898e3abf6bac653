package lexical

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/forPelevin/gomoji"
	"golang.org/x/text/unicode/norm"
)

// DefaultMinSpanishConfidence is the Spanish confidence a word must exceed.
const DefaultMinSpanishConfidence = 0.07

// asciiPunctuation matches Python's string.punctuation.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// spanishPunctuation are the non-ASCII marks that also disqualify a word.
const spanishPunctuation = "—¿?¡!–«»"

// vosotrosEndings are the second person plural informal verb endings.
// Words ending in any of them are excluded from the dictionary.
var vosotrosEndings = []string{
	"áis", "éis", "asteis", "isteis", "abais", "íais",
	"aréis", "eréis", "iréis", "aríais", "eríais", "iríais",
}

// Reason names the check that rejected a word.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonEmpty       Reason = "empty"
	ReasonEmoji       Reason = "emoji"
	ReasonPunctuation Reason = "punctuation"
	ReasonDigit       Reason = "digit"
	ReasonVosotros    Reason = "vosotros form"
	ReasonNotSpanish  Reason = "not spanish"
)

// Options tunes the filter.
type Options struct {
	MinSpanishConfidence float64
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{MinSpanishConfidence: DefaultMinSpanishConfidence}
}

// Filter rejects candidate words that do not belong in the dictionary.
type Filter struct {
	detector Detector
	opts     Options
	log      *slog.Logger
}

// NewFilter creates a filter scoring words with detector.
func NewFilter(detector Detector, opts Options, log *slog.Logger) *Filter {
	if log == nil {
		log = slog.Default()
	}
	return &Filter{
		detector: detector,
		opts:     opts,
		log:      log.With("stage", "lexical"),
	}
}

// Admit returns word unchanged and true when it is admissible, or "" and
// false when any check rejects it.
func (f *Filter) Admit(word string) (string, bool) {
	if f.Reason(word) != ReasonNone {
		return "", false
	}
	return word, true
}

// Reason returns the first check that rejects word, or ReasonNone. The
// language detector runs last since it is the expensive one.
func (f *Filter) Reason(word string) Reason {
	switch {
	case word == "":
		return ReasonEmpty
	case HasPunctuation(word):
		return ReasonPunctuation
	case HasDigit(word):
		return ReasonDigit
	case gomoji.ContainsEmoji(word):
		return ReasonEmoji
	case IsVosotrosForm(word):
		return ReasonVosotros
	}

	confidence := f.detector.SpanishConfidence(word)
	if confidence <= f.opts.MinSpanishConfidence {
		f.log.Debug("rejected non-spanish word",
			slog.String("word", word),
			slog.Float64("confidence", confidence),
		)
		return ReasonNotSpanish
	}

	return ReasonNone
}

// HasPunctuation reports whether word contains an ASCII punctuation
// character or one of the Spanish marks.
func HasPunctuation(word string) bool {
	return strings.ContainsAny(word, asciiPunctuation) || strings.ContainsAny(word, spanishPunctuation)
}

// HasDigit reports whether word contains a decimal digit in any script.
func HasDigit(word string) bool {
	return strings.IndexFunc(word, unicode.IsDigit) >= 0
}

// IsVosotrosForm reports whether word ends in a vosotros conjugation.
// Decomposed accents are composed first so "habláis" matches too.
func IsVosotrosForm(word string) bool {
	w := norm.NFC.String(word)
	for _, ending := range vosotrosEndings {
		if strings.HasSuffix(w, ending) {
			return true
		}
	}
	return false
}
