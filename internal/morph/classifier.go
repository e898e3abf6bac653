// Package morph decides which tagged tokens become dictionary entries.
// Only the base form of each inflecting word class is kept: infinitive
// verbs, singular nouns and masculine singular adjectives. Every other word
// class is kept as is.
package morph

import (
	"codeberg.org/snonux/palabras/internal/dictionary"
	"codeberg.org/snonux/palabras/internal/tagger"
)

// Classify turns a token into an entry, or reports false when the token is
// an inflected form of a verb, noun or adjective.
func Classify(tok tagger.Token) (dictionary.Entry, bool) {
	pos := dictionary.ParsePartOfSpeech(tok.POS)
	feats := tok.Features()

	switch pos {
	case dictionary.PartOfSpeechVerb:
		if !feats.Has("VerbForm", "Inf") {
			return dictionary.Entry{}, false
		}
		return dictionary.NewEntry(tok.Text, pos, dictionary.GenderUnset), true

	case dictionary.PartOfSpeechNoun:
		if !feats.Has("Number", "Sing") {
			return dictionary.Entry{}, false
		}
		return dictionary.NewEntry(tok.Text, pos, nounGender(feats)), true

	case dictionary.PartOfSpeechAdjective:
		if !feats.Has("Number", "Sing") || !feats.Has("Gender", "Masc") {
			return dictionary.Entry{}, false
		}
		return dictionary.NewEntry(tok.Text, pos, dictionary.GenderUnset), true

	default:
		return dictionary.NewEntry(tok.Text, pos, dictionary.GenderUnset), true
	}
}

// ClassifyAll classifies tokens in order and drops the rejected ones.
func ClassifyAll(tokens []tagger.Token) []dictionary.Entry {
	var entries []dictionary.Entry
	for _, tok := range tokens {
		if entry, ok := Classify(tok); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// nounGender is binary: anything not marked masculine is feminine.
func nounGender(feats tagger.Features) dictionary.Gender {
	if feats.Has("Gender", "Masc") {
		return dictionary.GenderMasculine
	}
	return dictionary.GenderFeminine
}
