// Package catalog stores scan results for generated worlds in a sqlite
// database, so batch runs can be audited later.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package catalog

import (
	"database/sql"
	"errors"
	"time"
)

// Entry is one scanned world.
type Entry struct {
	WorldName string
	WorldPath string
	Matches   int
	ExtremalX int
	ExtremalY int
	Found     bool
	Deleted   bool
	CheckedAt time.Time
}

// Catalog is an append-only scan history.
type Catalog struct {
	db     *sql.DB
	insert *sql.Stmt
}

const schema = `CREATE TABLE IF NOT EXISTS worlds (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	world_name TEXT NOT NULL,
	world_path TEXT NOT NULL,
	matches INTEGER NOT NULL,
	extremal_x INTEGER NOT NULL,
	extremal_y INTEGER NOT NULL,
	found INTEGER NOT NULL,
	deleted INTEGER NOT NULL,
	checked_at TIMESTAMP NOT NULL
)`

// Open opens the catalog database at the given path, creating it and its
// schema if needed.
//
// The returned Catalog must be closed after use to release database
// resources.
func Open(filePath string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	insert, err := db.Prepare(`INSERT INTO worlds
		(world_name, world_path, matches, extremal_x, extremal_y, found, deleted, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{db: db, insert: insert}, nil
}

func (c *Catalog) Close() error {
	return errors.Join(c.insert.Close(), c.db.Close())
}

func (c *Catalog) Record(entry Entry) error {
	_, err := c.insert.Exec(
		entry.WorldName, entry.WorldPath, entry.Matches,
		entry.ExtremalX, entry.ExtremalY, entry.Found, entry.Deleted,
		entry.CheckedAt.UTC())
	return err
}

// Entries returns the scan history, newest first.
func (c *Catalog) Entries() ([]Entry, error) {
	rows, err := c.db.Query(`SELECT world_name, world_path, matches,
		extremal_x, extremal_y, found, deleted, checked_at
		FROM worlds ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		err := rows.Scan(&e.WorldName, &e.WorldPath, &e.Matches,
			&e.ExtremalX, &e.ExtremalY, &e.Found, &e.Deleted, &e.CheckedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
