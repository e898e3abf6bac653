package batch

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/palabras/internal/dictionary"
)

func TestParseWordList(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []string
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name:        "bare words",
			fileContent: "de\nla\nque\n",
			want:        []string{"de", "la", "que"},
		},
		{
			name:        "frequency columns",
			fileContent: "de,1234\nla,1000,extra\nque, 900",
			want:        []string{"de", "la", "que"},
		},
		{
			name:        "windows line endings",
			fileContent: "gato\r\nperro\r\n",
			want:        []string{"gato", "perro"},
		},
		{
			name:        "surrounding whitespace and blank lines",
			fileContent: "\n  gato  \n\n,5\nperro\n",
			want:        []string{"gato", "perro"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWordList(strings.NewReader(tt.fileContent))
			if err != nil {
				t.Fatalf("ParseWordList() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseWordList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadWordList(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "words.csv")
	if err := os.WriteFile(path, []byte("año,10\npingüino,3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadWordList(path)
	if err != nil {
		t.Fatalf("ReadWordList() error = %v", err)
	}
	want := []string{"año", "pingüino"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadWordList() = %v, want %v", got, want)
	}
}

func TestReadWordListMissingFile(t *testing.T) {
	if _, err := ReadWordList(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMergeTranslations(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    string
	}{
		{"overlapping columns", []string{"a,b", "b", "", "c"}, "a, b, c"},
		{"all empty", []string{"", "", "", ""}, ""},
		{"whitespace pieces", []string{" cat , ", "  ", "cat", "feline "}, "cat, feline"},
		{"keeps first occurrence order", []string{"c", "b,a", "a", "c"}, "c, b, a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeTranslations(tt.columns...); got != tt.want {
				t.Errorf("MergeTranslations() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseProcessed(t *testing.T) {
	content := `gato,M,NOUN,cat,"cat, tomcat",,kitty
comer,,VERB,to eat,eat,,
bueno,,ADJ,good,,fine,
casa,F,NOUN,house,home,,
`
	entries, summary, err := ParseProcessed(strings.NewReader(content), nil)
	if err != nil {
		t.Fatalf("ParseProcessed() error = %v", err)
	}
	if summary.Rows != 4 || summary.Skipped != 0 {
		t.Errorf("unexpected summary %+v", summary)
	}

	want := []dictionary.Entry{
		{Word: "gato", PartOfSpeech: dictionary.PartOfSpeechNoun, Gender: dictionary.GenderMasculine, Translation: "cat, tomcat, kitty", Prevalence: 0.75},
		{Word: "comer", PartOfSpeech: dictionary.PartOfSpeechVerb, Translation: "to eat, eat", Prevalence: 0.5},
		{Word: "bueno", PartOfSpeech: dictionary.PartOfSpeechAdjective, Translation: "good, fine", Prevalence: 0.25},
		{Word: "casa", PartOfSpeech: dictionary.PartOfSpeechNoun, Gender: dictionary.GenderFeminine, Translation: "house, home", Prevalence: 0},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("ParseProcessed() =\n%+v\nwant\n%+v", entries, want)
	}
}

func TestParseProcessedMergesColumnSet(t *testing.T) {
	entries, _, err := ParseProcessed(strings.NewReader("x,,NOUN,\"a,b\",b,,c\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	pieces := strings.Split(entries[0].Translation, ", ")
	got := make(map[string]bool)
	for _, p := range pieces {
		got[p] = true
	}
	if len(pieces) != 3 || !got["a"] || !got["b"] || !got["c"] {
		t.Errorf("expected a permutation of {a,b,c}, got %q", entries[0].Translation)
	}
}

func TestParseProcessedSkipsShortRowsAndHeader(t *testing.T) {
	content := `word,gender,pos,deepl,google,other,manual
gato,M,NOUN,cat,,,
broken,M,NOUN
perro,M,NOUN,dog,,,
`
	entries, summary, err := ParseProcessed(strings.NewReader(content), nil)
	if err != nil {
		t.Fatalf("ParseProcessed() error = %v", err)
	}
	if summary.Rows != 2 || summary.Skipped != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if len(entries) != 2 || entries[0].Word != "gato" || entries[1].Word != "perro" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if entries[0].Prevalence != 0.5 || entries[1].Prevalence != 0 {
		t.Errorf("unexpected prevalence %v, %v", entries[0].Prevalence, entries[1].Prevalence)
	}
}

func TestParseProcessedKeepsCellsAsWritten(t *testing.T) {
	entries, _, err := ParseProcessed(strings.NewReader("Harry ,m,propn,Harry,,,\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Word != "Harry " || entries[0].PartOfSpeech != "propn" {
		t.Errorf("got word %q and tag %q", entries[0].Word, entries[0].PartOfSpeech)
	}
	if entries[0].Gender != dictionary.GenderMasculine {
		t.Errorf("Gender = %q, want M", entries[0].Gender)
	}
}

func TestParseProcessedRowError(t *testing.T) {
	_, err := parseProcessedRow([]string{"gato", "M"})
	if !errors.Is(err, ErrMalformedRow) {
		t.Errorf("expected ErrMalformedRow, got %v", err)
	}
}

func TestLoadProcessed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed.csv")
	if err := os.WriteFile(path, []byte("sol,M,NOUN,sun,,,\n"), 0644); err != nil {
		t.Fatal(err)
	}

	entries, summary, err := LoadProcessed(path, nil)
	if err != nil {
		t.Fatalf("LoadProcessed() error = %v", err)
	}
	if summary.Rows != 1 || len(entries) != 1 || entries[0].Translation != "sun" {
		t.Errorf("unexpected result %+v %+v", entries, summary)
	}
	if entries[0].Prevalence != 0 {
		t.Errorf("single row should have prevalence 0, got %v", entries[0].Prevalence)
	}
}

func TestLoadProcessedMissingFile(t *testing.T) {
	if _, _, err := LoadProcessed(filepath.Join(t.TempDir(), "nope.csv"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}
