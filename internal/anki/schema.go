package anki

// collectionSchema is the Anki 2.1 collection layout (schema version 11).
const collectionSchema = `
CREATE TABLE col (id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
  scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL, usn integer NOT NULL,
  ls integer NOT NULL, conf text NOT NULL, models text NOT NULL, decks text NOT NULL,
  dconf text NOT NULL, tags text NOT NULL);
CREATE TABLE notes (id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
  mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL, flds text NOT NULL,
  sfld text NOT NULL, csum integer NOT NULL, flags integer NOT NULL, data text NOT NULL);
CREATE TABLE cards (id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
  ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL, type integer NOT NULL,
  queue integer NOT NULL, due integer NOT NULL, ivl integer NOT NULL, factor integer NOT NULL,
  reps integer NOT NULL, lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
  odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL);
CREATE TABLE revlog (id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
  ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL, factor integer NOT NULL,
  time integer NOT NULL, type integer NOT NULL);
CREATE TABLE graves (usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL);
CREATE INDEX ix_notes_csum ON notes (csum);
CREATE INDEX ix_notes_usn ON notes (usn);
CREATE INDEX ix_cards_usn ON cards (usn);
CREATE INDEX ix_cards_nid ON cards (nid);
CREATE INDEX ix_cards_sched ON cards (did, queue, due);
CREATE INDEX ix_revlog_usn ON revlog (usn);
CREATE INDEX ix_revlog_cid ON revlog (cid);
`

// deckOptions is the scheduling preset (dconf) shared by both decks.
type deckOptions struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Dyn      int            `json:"dyn"`
	New      newCardOptions `json:"new"`
	Lapse    lapseOptions   `json:"lapse"`
	Rev      reviewOptions  `json:"rev"`
	Timer    int            `json:"timer"`
	MaxTaken int            `json:"maxTaken"`
	Usn      int            `json:"usn"`
	Mod      int64          `json:"mod"`
	Autoplay bool           `json:"autoplay"`
	Replayq  bool           `json:"replayq"`
}

type newCardOptions struct {
	Delays        []int `json:"delays"`
	Ints          []int `json:"ints"`
	InitialFactor int   `json:"initialFactor"`
	PerDay        int   `json:"perDay"`
	Order         int   `json:"order"`
	Bury          bool  `json:"bury"`
	Separate      bool  `json:"separate"`
}

type lapseOptions struct {
	Delays      []int   `json:"delays"`
	Mult        float64 `json:"mult"`
	MinInt      int     `json:"minInt"`
	LeechFails  int     `json:"leechFails"`
	LeechAction int     `json:"leechAction"`
}

type reviewOptions struct {
	PerDay   int     `json:"perDay"`
	Ease4    float64 `json:"ease4"`
	Fuzz     float64 `json:"fuzz"`
	MaxIvl   int     `json:"maxIvl"`
	IvlFct   float64 `json:"ivlFct"`
	Bury     bool    `json:"bury"`
	MinSpace int     `json:"minSpace"`
}

// defaultDeckOptions introduces 20 new words a day, which suits a
// frequency list learned from the top.
func defaultDeckOptions(mod int64) deckOptions {
	return deckOptions{
		ID:   1,
		Name: "Default",
		New: newCardOptions{
			Delays:        []int{1, 10},
			Ints:          []int{1, 4, 7},
			InitialFactor: 2500,
			PerDay:        20,
			Order:         1,
			Bury:          true,
			Separate:      true,
		},
		Lapse: lapseOptions{Delays: []int{10}, MinInt: 1, LeechFails: 8},
		Rev: reviewOptions{
			PerDay: 100, Ease4: 1.3, Fuzz: 0.05, MaxIvl: 36500,
			IvlFct: 1, Bury: true, MinSpace: 1,
		},
		MaxTaken: 60,
		Mod:      mod,
		Autoplay: true,
		Replayq:  true,
	}
}

// deck is one entry of the col.decks map.
type deck struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Mod              int64  `json:"mod"`
	Desc             string `json:"desc"`
	Collapsed        bool   `json:"collapsed"`
	BrowserCollapsed bool   `json:"browserCollapsed"`
	Dyn              int    `json:"dyn"`
	Conf             int    `json:"conf"`
	Usn              int    `json:"usn"`
	NewToday         [2]int `json:"newToday"`
	RevToday         [2]int `json:"revToday"`
	LrnToday         [2]int `json:"lrnToday"`
	TimeToday        [2]int `json:"timeToday"`
	ExtendNew        int    `json:"extendNew"`
	ExtendRev        int    `json:"extendRev"`
}

func newDeck(id int64, name, desc string, mod int64) deck {
	return deck{ID: id, Name: name, Mod: mod, Desc: desc, Conf: 1, ExtendNew: 10, ExtendRev: 50}
}

const cardCSS = `.card {
  font-family: Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #333;
  background-color: white;
}
.spanish { font-size: 32px; font-weight: bold; color: #c0392b; margin: 20px 0; }
.english { font-size: 28px; font-weight: bold; color: #2c3e50; margin: 20px 0; }
.grammar { font-size: 14px; color: #95a5a6; }
.notes { font-size: 16px; color: #7f8c8d; margin-top: 20px; font-style: italic; }
hr#answer { margin: 30px 0; border: 0; border-top: 1px solid #ecf0f1; }`

const latexPre = `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`
