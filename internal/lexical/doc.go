// Package lexical filters raw frequency-list tokens before they are tagged.
// It drops emoji, punctuation, numbers, vosotros conjugations and strings
// that do not look Spanish.
package lexical
