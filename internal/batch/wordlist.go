package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadWordList reads a frequency-ranked word list, most frequent first.
// Only the first comma separated field of each line is used, so both bare
// word lists and "word,count" exports work.
func ReadWordList(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	defer func() { _ = file.Close() }()

	words, err := ParseWordList(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", filename, err)
	}
	return words, nil
}

// ParseWordList is ReadWordList over a reader. Blank lines are skipped;
// the order of the remaining lines is preserved.
func ParseWordList(r io.Reader) ([]string, error) {
	var words []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		field, _, _ := strings.Cut(scanner.Text(), ",")
		if word := strings.TrimSpace(field); word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return words, nil
}
