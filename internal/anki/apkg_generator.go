package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// guidNamespace scopes note GUIDs, so importing a rebuilt deck updates the
// notes of words already in the collection.
var guidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://codeberg.org/snonux/palabras"))

// noteFields are the note type fields, in flds order.
var noteFields = []string{"Spanish", "English", "Gender", "PartOfSpeech", "Notes"}

// APKGGenerator creates Anki package files (.apkg)
type APKGGenerator struct {
	deckName string
	deckID   int64
	modelID  int64
	cards    []Card
}

// NewAPKGGenerator creates a new APKG generator
func NewAPKGGenerator(deckName string) *APKGGenerator {
	now := time.Now().UnixMilli()
	return &APKGGenerator{
		deckName: deckName,
		deckID:   now,
		modelID:  now + 1,
	}
}

// AddCard adds a card to the generator
func (g *APKGGenerator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// NoteGUID returns the stable note GUID of a Spanish word.
func NoteGUID(word string) string {
	return uuid.NewSHA1(guidNamespace, []byte(word)).String()
}

// GenerateAPKG writes the collection database and packs it into outputPath.
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "palabras_apkg_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := writePackage(outputPath, dbPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}
	return nil
}

func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(collectionSchema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := g.insertNotes(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}
	return nil
}

// insertCollection writes the single col row holding decks, note type and
// scheduler settings as JSON.
func (g *APKGGenerator) insertCollection(db *sql.DB) error {
	now := time.Now().Unix()
	modelKey := strconv.FormatInt(g.modelID, 10)

	decks := map[string]deck{
		"1": newDeck(1, "Default", "", now),
		strconv.FormatInt(g.deckID, 10): newDeck(g.deckID, g.deckName,
			"Spanish vocabulary ranked by frequency, built by palabras", now),
	}
	conf := map[string]interface{}{
		"nextPos":       len(g.cards) + 1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      modelKey,
		"dayLearnFirst": false,
	}

	var encoded [4]string
	for i, v := range []interface{}{
		conf,
		map[string]interface{}{modelKey: g.noteType(now)},
		decks,
		map[string]deckOptions{"1": defaultDeckOptions(now)},
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		encoded[i] = string(b)
	}

	_, err := db.Exec(`INSERT INTO col
		(id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		now, now*1000, now*1000, encoded[0], encoded[1], encoded[2], encoded[3])
	return err
}

// noteType describes a two-way card: Spanish to English and back.
func (g *APKGGenerator) noteType(mod int64) map[string]interface{} {
	flds := make([]map[string]interface{}, len(noteFields))
	for i, name := range noteFields {
		flds[i] = map[string]interface{}{
			"name": name, "ord": i, "sticky": false, "rtl": false,
			"font": "Arial", "size": 20, "media": []string{},
		}
	}

	template := func(name string, ord int, front, back string) map[string]interface{} {
		return map[string]interface{}{
			"name":  name,
			"ord":   ord,
			"qfmt":  fmt.Sprintf(`<div class="%s">{{%s}}</div>`, strings.ToLower(front), front),
			"afmt":  backTemplate(strings.ToLower(back), back),
			"did":   nil,
			"bqfmt": "",
			"bafmt": "",
		}
	}

	return map[string]interface{}{
		"id":        g.modelID,
		"name":      "palabras Spanish (and reversed card)",
		"type":      0,
		"mod":       mod,
		"usn":       -1,
		"sortf":     0,
		"did":       g.deckID,
		"req":       [][]interface{}{{0, "all", []int{0}}, {1, "all", []int{1}}},
		"vers":      []int{},
		"tags":      []string{},
		"latexPre":  latexPre,
		"latexPost": `\end{document}`,
		"flds":      flds,
		"tmpls": []map[string]interface{}{
			template("Spanish to English", 0, "Spanish", "English"),
			template("English to Spanish", 1, "English", "Spanish"),
		},
		"css": cardCSS,
	}
}

func backTemplate(class, field string) string {
	return fmt.Sprintf(`{{FrontSide}}
<hr id="answer">
<div class="%s">{{%s}}</div>
<div class="grammar">{{PartOfSpeech}} {{Gender}}</div>
{{#Notes}}<div class="notes">{{Notes}}</div>{{/Notes}}`, class, field)
}

// noteTags returns the space separated tags of a card.
func noteTags(card Card) string {
	tags := []string{"palabras"}
	if card.PartOfSpeech != "" {
		tags = append(tags, strings.ToLower(card.PartOfSpeech))
	}
	return " " + strings.Join(tags, " ") + " "
}

// insertNotes adds one note and two new cards per card. New cards are due
// in insertion order, so a frequency ordered deck is learned from the top.
func (g *APKGGenerator) insertNotes(db *sql.DB) error {
	now := time.Now()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	noteStmt, err := tx.Prepare(`INSERT INTO notes
		(id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
		VALUES (?, ?, ?, ?, -1, ?, ?, ?, 0, 0, '')`)
	if err != nil {
		return err
	}
	defer func() { _ = noteStmt.Close() }()

	cardStmt, err := tx.Prepare(`INSERT INTO cards
		(id, nid, did, ord, mod, usn, type, queue, due, ivl, factor, reps, lapses, left, odue, odid, flags, data)
		VALUES (?, ?, ?, ?, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`)
	if err != nil {
		return err
	}
	defer func() { _ = cardStmt.Close() }()

	for i, card := range g.cards {
		// Each note reserves three IDs: itself and its two cards
		noteID := now.UnixMilli() + int64(i*3)

		english := card.Translation
		if english == "" {
			english = "Translation needed"
		}
		front := card.Front()

		// Anki separates fields with ASCII 31
		fields := strings.Join([]string{front, english, card.Gender, card.PartOfSpeech, card.Notes}, "\x1f")

		if _, err := noteStmt.Exec(noteID, NoteGUID(card.Spanish), g.modelID, now.Unix(),
			noteTags(card), fields, front); err != nil {
			return fmt.Errorf("failed to insert note %q: %w", card.Spanish, err)
		}

		for ord := 0; ord < 2; ord++ {
			if _, err := cardStmt.Exec(noteID+int64(ord)+1, noteID, g.deckID, ord,
				now.Unix(), i+1); err != nil {
				return fmt.Errorf("failed to insert card %q: %w", card.Spanish, err)
			}
		}
	}

	return tx.Commit()
}

// writePackage zips the collection with an empty media map.
func writePackage(outputPath, dbPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	archive := zip.NewWriter(out)

	w, err := archive.Create("collection.anki2")
	if err != nil {
		return err
	}
	db, err := os.Open(dbPath)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, db)
	_ = db.Close()
	if err != nil {
		return err
	}

	w, err = archive.Create("media")
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte("{}")); err != nil {
		return err
	}

	if err := archive.Close(); err != nil {
		return err
	}
	return out.Close()
}
