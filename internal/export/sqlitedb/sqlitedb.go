// Package sqlitedb persists extraction results to a SQLite database, as an
// alternative to the JSON artifacts when downstream consumers want queries
// instead of files.
//
// Build modes:
//   - Default (CGO_ENABLED=0): pure Go modernc.org/sqlite
//   - CGO mode (CGO_ENABLED=1 -tags cgo_sqlite): mattn/go-sqlite3
package sqlitedb

import (
	"database/sql"
	"encoding/json"

	"github.com/lexigame/wordmine/core/errors"
	"github.com/lexigame/wordmine/core/taboo"
)

// DriverType identifies the underlying implementation: "purego" or "cgo".
func DriverType() string {
	return driverType
}

const schema = `
CREATE TABLE IF NOT EXISTS taboo_words (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	lang          TEXT NOT NULL,
	category      TEXT NOT NULL,
	target_word   TEXT NOT NULL,
	related_words TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_taboo_words_lang ON taboo_words(lang, category);

CREATE TABLE IF NOT EXISTS hierarchy_edges (
	child  TEXT NOT NULL,
	parent TEXT NOT NULL,
	PRIMARY KEY (child, parent)
);
`

// Open opens (creating if needed) a results database and ensures the
// schema exists.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	return db, nil
}

// InsertWordSets stores taboo word sets for one language and category in a
// single transaction. Related words are stored as a JSON array.
func InsertWordSets(db *sql.DB, lang, category string, sets []taboo.WordSet) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	stmt, err := tx.Prepare(
		`INSERT INTO taboo_words (lang, category, target_word, related_words) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, set := range sets {
		related, err := json.Marshal(set.RelatedWord)
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "marshal related words for %s", set.TargetWord)
		}
		if _, err := stmt.Exec(lang, category, set.TargetWord, string(related)); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert %s", set.TargetWord)
		}
	}
	return tx.Commit()
}

// HierarchyEdge is one child-to-parent link for persistence.
type HierarchyEdge struct {
	Child  string
	Parent string
}

// InsertHierarchyEdges stores edges in a single transaction, ignoring
// duplicates across runs.
func InsertHierarchyEdges(db *sql.DB, edges []HierarchyEdge) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	stmt, err := tx.Prepare(
		`INSERT OR IGNORE INTO hierarchy_edges (child, parent) VALUES (?, ?)`)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, e := range edges {
		if _, err := stmt.Exec(e.Child, e.Parent); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert %s -> %s", e.Child, e.Parent)
		}
	}
	return tx.Commit()
}
