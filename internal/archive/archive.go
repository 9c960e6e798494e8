// Package archive records simulation samples into a SQLite file so long
// parameter sweeps can be queried after the fact.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"protsim-core/psm"
	"protsim/pkg/api"
)

const schema = `
CREATE TABLE IF NOT EXISTS samples (
	id                        INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at                TEXT    NOT NULL,
	replicate                 INTEGER NOT NULL,
	seed                      INTEGER NOT NULL,
	full_birth_rate           REAL    NOT NULL,
	full_extinction_rate      REAL    NOT NULL,
	incipient_birth_rate      REAL    NOT NULL,
	conversion_rate           REAL    NOT NULL,
	incipient_extinction_rate REAL    NOT NULL,
	final_time                REAL    NOT NULL,
	leaves                    INTEGER NOT NULL,
	full_species_leaves       INTEGER NOT NULL,
	protracted_tree           TEXT,
	pruned_tree               TEXT
);`

// Archive is an append-only store of completed samples.
type Archive struct {
	db *sql.DB
}

// Open creates or opens the SQLite file at path and ensures the schema exists.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive: create schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// InsertSample appends one sample together with the rates that produced it.
func (a *Archive) InsertSample(cfg psm.Config, s api.SampleV1) error {
	_, err := a.db.Exec(`INSERT INTO samples (
		created_at, replicate, seed,
		full_birth_rate, full_extinction_rate,
		incipient_birth_rate, conversion_rate, incipient_extinction_rate,
		final_time, leaves, full_species_leaves,
		protracted_tree, pruned_tree
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		s.Replicate, s.Seed,
		cfg.FullSpeciesBirthRate, cfg.FullSpeciesExtinctionRate,
		cfg.IncipientSpeciesBirthRate, cfg.IncipientSpeciesConversionRate, cfg.IncipientSpeciesExtinctionRate,
		s.FinalTime, s.Leaves, s.FullSpeciesLeaves,
		s.ProtractedTree, s.PrunedTree,
	)
	if err != nil {
		return fmt.Errorf("archive: insert sample %d: %w", s.Replicate, err)
	}
	return nil
}

// Count reports how many samples are stored.
func (a *Archive) Count() (int, error) {
	var n int
	if err := a.db.QueryRow(`SELECT COUNT(*) FROM samples`).Scan(&n); err != nil {
		return 0, fmt.Errorf("archive: count: %w", err)
	}
	return n, nil
}

// Close flushes and closes the underlying database.
func (a *Archive) Close() error { return a.db.Close() }
