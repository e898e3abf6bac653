package dictionary

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByWord orders entries alphabetically using Spanish collation, so that
// "ñ" sorts after "n" and accented vowels sort next to their base letter.
// The sort is stable; entries with the same word keep their rank order.
func SortByWord(entries []Entry) {
	c := collate.New(language.Spanish)
	sort.SliceStable(entries, func(i, j int) bool {
		return c.CompareString(entries[i].Word, entries[j].Word) < 0
	})
}
