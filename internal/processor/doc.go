// Package processor runs the dictionary pipeline end to end. It reads the
// frequency list (or a processed file), filters and tags the words, ranks
// and translates the resulting entries, then writes the result file and
// the optional Anki deck. It is the only package that knows about every
// stage; the stages themselves never call each other.
package processor
