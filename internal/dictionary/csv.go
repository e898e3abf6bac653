package dictionary

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Header is the first row of every result file.
var Header = []string{"Spanish Word", "Translation", "Prevalence", "Gender", "Part-of-Speech"}

// DefaultFileName is where the pipeline writes its result.
const DefaultFileName = "result.csv"

// Write encodes entries as CSV, header first.
func Write(w io.Writer, entries []Entry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.Word,
			e.Translation,
			formatPrevalence(e.Prevalence),
			string(e.Gender),
			string(e.PartOfSpeech),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write entry %q: %w", e.Word, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile replaces path with the CSV encoding of entries. The file is
// written in place; a crash mid-write leaves a partial file behind.
func WriteFile(path string, entries []Entry) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove previous result: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create result file: %w", err)
	}

	buf := bufio.NewWriter(file)
	if err := Write(buf, entries); err != nil {
		file.Close()
		return err
	}
	if err := buf.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush result file: %w", err)
	}

	return file.Close()
}

// Read decodes a result file produced by Write.
func Read(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)

	var entries []Entry
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read result row: %w", err)
		}

		if first {
			first = false
			if record[0] == Header[0] {
				continue
			}
		}

		prevalence, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid prevalence %q for %q: %w", record[2], record[0], err)
		}

		entries = append(entries, Entry{
			Word:         record[0],
			Translation:  record[1],
			Prevalence:   prevalence,
			Gender:       ParseGender(record[3]),
			PartOfSpeech: ParsePartOfSpeech(record[4]),
		})
	}

	return entries, nil
}

// ReadFile decodes the result file at path.
func ReadFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// formatPrevalence always keeps a decimal point: 0 is written as "0.0".
func formatPrevalence(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
