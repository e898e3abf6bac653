// Package translation provides Spanish to English translation for
// dictionary entries. A Resolver either asks one authoritative provider
// (DeepL) or aggregates several noisy providers into a deduplicated list.
// Every provider call yields an Outcome; failures never reach the caller.
package translation
