package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"codeberg.org/snonux/palabras/internal/dictionary"
)

// ErrMalformedRow marks a processed row with too few columns.
var ErrMalformedRow = errors.New("malformed row")

// Columns of a processed dictionary file.
const (
	colWord = iota
	colGender
	colPartOfSpeech
	colDeepL
	colGoogle
	colOther
	colManual

	processedColumns
)

// translationColumns are merged, in this order, into one translation.
var translationColumns = []int{colDeepL, colGoogle, colOther, colManual}

// LoadSummary reports what LoadProcessed read.
type LoadSummary struct {
	Rows    int
	Skipped int
}

// LoadProcessed reads a processed dictionary file. Each row carries
// word, gender, part of speech and four translation columns; the
// translations are merged and prevalence is derived from row order.
// Rows with fewer than seven columns are logged and skipped.
func LoadProcessed(filename string, log *slog.Logger) ([]dictionary.Entry, LoadSummary, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, LoadSummary{}, fmt.Errorf("failed to read processed file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ParseProcessed(file, log)
}

// ParseProcessed is LoadProcessed over a reader.
func ParseProcessed(r io.Reader, log *slog.Logger) ([]dictionary.Entry, LoadSummary, error) {
	if log == nil {
		log = slog.Default()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var (
		entries []dictionary.Entry
		summary LoadSummary
		line    int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, summary, fmt.Errorf("failed to parse processed file: %w", err)
		}
		line++

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "word") {
			continue
		}

		entry, err := parseProcessedRow(record)
		if err != nil {
			summary.Skipped++
			log.Warn("skipping processed row",
				slog.Int("line", line),
				slog.Int("columns", len(record)),
				slog.Any("error", err),
			)
			continue
		}
		entries = append(entries, entry)
	}

	summary.Rows = len(entries)
	dictionary.AssignPrevalence(entries)
	return entries, summary, nil
}

func parseProcessedRow(record []string) (dictionary.Entry, error) {
	if len(record) < processedColumns {
		return dictionary.Entry{}, fmt.Errorf("%w: want %d columns, got %d", ErrMalformedRow, processedColumns, len(record))
	}

	// Word and tag cells are carried over as written
	entry := dictionary.NewEntry(
		record[colWord],
		dictionary.PartOfSpeech(record[colPartOfSpeech]),
		dictionary.ParseGender(record[colGender]),
	)

	columns := make([]string, len(translationColumns))
	for i, col := range translationColumns {
		columns[i] = record[col]
	}
	entry.Translation = MergeTranslations(columns...)

	return entry, nil
}

// MergeTranslations splits each column on commas, trims the pieces,
// drops empty ones and joins the first occurrence of each with ", ".
func MergeTranslations(columns ...string) string {
	var (
		merged []string
		seen   = make(map[string]bool)
	)
	for _, column := range columns {
		for _, piece := range strings.Split(column, ",") {
			piece = strings.TrimSpace(piece)
			if piece == "" || seen[piece] {
				continue
			}
			seen[piece] = true
			merged = append(merged, piece)
		}
	}
	return strings.TrimSuffix(strings.Join(merged, ", "), ", ")
}
