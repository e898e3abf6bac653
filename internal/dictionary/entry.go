package dictionary

import (
	"math"
	"strings"
)

// PartOfSpeech is the part-of-speech tag of an entry. The three tags the
// classifier has rules for are named; any other tag the tagger produces is
// kept verbatim (ADV, DET, PRON, ...).
type PartOfSpeech string

const (
	PartOfSpeechVerb      PartOfSpeech = "VERB"
	PartOfSpeechNoun      PartOfSpeech = "NOUN"
	PartOfSpeechAdjective PartOfSpeech = "ADJ"
)

// ParsePartOfSpeech normalises a raw tag string.
func ParsePartOfSpeech(s string) PartOfSpeech {
	return PartOfSpeech(strings.ToUpper(strings.TrimSpace(s)))
}

// IsOther reports whether the tag has no classification rule of its own.
func (p PartOfSpeech) IsOther() bool {
	switch p {
	case PartOfSpeechVerb, PartOfSpeechNoun, PartOfSpeechAdjective:
		return false
	}
	return true
}

// Gender is only populated for nouns.
type Gender string

const (
	GenderUnset     Gender = ""
	GenderMasculine Gender = "M"
	GenderFeminine  Gender = "F"
)

// ParseGender accepts the one-letter codes written to the result file.
// Anything else is treated as unset.
func ParseGender(s string) Gender {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M":
		return GenderMasculine
	case "F":
		return GenderFeminine
	}
	return GenderUnset
}

// Entry is one row of the vocabulary dictionary.
type Entry struct {
	Word         string
	PartOfSpeech PartOfSpeech
	Gender       Gender
	Translation  string  // comma separated English candidates, may be empty
	Prevalence   float64 // 0..1, higher means more frequent
}

// NewEntry creates an entry without translation or prevalence.
func NewEntry(word string, pos PartOfSpeech, gender Gender) Entry {
	return Entry{
		Word:         word,
		PartOfSpeech: pos,
		Gender:       gender,
	}
}

// Prevalence returns (total-rank)/total for a 1-based rank, rounded to two
// decimals with ties to even.
func Prevalence(rank, total int) float64 {
	if total <= 0 {
		return 0
	}
	v := float64(total-rank) / float64(total)
	return math.RoundToEven(v*100) / 100
}

// AssignPrevalence sets the prevalence of every entry from its position in
// the slice. The slice order must be the frequency order of the source list.
func AssignPrevalence(entries []Entry) {
	total := len(entries)
	for i := range entries {
		entries[i].Prevalence = Prevalence(i+1, total)
	}
}
