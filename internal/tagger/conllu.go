package tagger

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseCoNLLU reads the syntactic words of a CoNLL-U document. Comment
// lines, multiword token ranges ("1-2") and empty nodes ("1.1") are
// skipped, so a contraction like "del" yields "de" and "el".
func ParseCoNLLU(r io.Reader) ([]Token, error) {
	var tokens []Token

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) != 10 {
			return nil, fmt.Errorf("conllu line %d: expected 10 columns, got %d", lineNo, len(cols))
		}

		if strings.ContainsAny(cols[0], "-.") {
			continue
		}

		feats := cols[5]
		if feats == "_" {
			feats = ""
		}

		tokens = append(tokens, Token{
			Text:  cols[1],
			POS:   cols[3],
			Morph: feats,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conllu: %w", err)
	}

	return tokens, nil
}
