package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"codeberg.org/snonux/palabras/internal/dictionary"
)

// Card represents a single Anki flashcard
type Card struct {
	Spanish      string  // The Spanish headword
	Translation  string  // English candidates, may be empty
	Gender       string  // M, F or empty
	PartOfSpeech string  // UD tag, e.g. NOUN
	Prevalence   float64 // 0..1
	Notes        string  // Optional notes
}

// CardFromEntry builds a card from a dictionary entry.
func CardFromEntry(e dictionary.Entry) Card {
	return Card{
		Spanish:      e.Word,
		Translation:  e.Translation,
		Gender:       string(e.Gender),
		PartOfSpeech: string(e.PartOfSpeech),
		Prevalence:   e.Prevalence,
	}
}

// Front returns the Spanish side, with the article for nouns.
func (c Card) Front() string {
	if c.PartOfSpeech != string(dictionary.PartOfSpeechNoun) {
		return c.Spanish
	}
	switch c.Gender {
	case string(dictionary.GenderMasculine):
		return "el " + c.Spanish
	case string(dictionary.GenderFeminine):
		return "la " + c.Spanish
	}
	return c.Spanish
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddEntries adds one card per dictionary entry, in order.
func (g *Generator) AddEntries(entries []dictionary.Entry) {
	for _, e := range entries {
		g.AddCard(CardFromEntry(e))
	}
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		headers := []string{"Spanish", "English", "Gender", "Part-of-Speech", "Prevalence", "Notes"}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{
			card.Front(),
			card.Translation,
			card.Gender,
			card.PartOfSpeech,
			strconv.FormatFloat(card.Prevalence, 'f', 2, 64),
			card.Notes,
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}
	return file.Close()
}

// GenerateAPKG creates a proper .apkg file for Anki import
func (g *Generator) GenerateAPKG(outputPath, deckName string) error {
	apkgGen := NewAPKGGenerator(deckName)

	for _, card := range g.cards {
		apkgGen.AddCard(card)
	}

	return apkgGen.GenerateAPKG(outputPath)
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, translated int) {
	totalCards = len(g.cards)

	for _, card := range g.cards {
		if strings.TrimSpace(card.Translation) != "" {
			translated++
		}
	}

	return
}
