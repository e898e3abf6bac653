// Package tagger wraps the external tokenizer and morphological analyser.
// A tagger turns one word into tokens carrying a UD part-of-speech tag and
// a raw feature string; the classification of those tokens happens in the
// morph package.
package tagger
