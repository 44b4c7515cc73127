// Package storage is the host-side checkpoint/replay store: a
// modernc.org/sqlite-backed database that a caller outside the engine
// writes each published ScenarioTimeStep and AssetTracker critical-path
// result into, for later replay or inspection. Nothing in internal/scenario
// or internal/asset imports this package — scenario.Scenario.Advance
// publishes a step purely by returning, and it is this package's job,
// called by a host after that return, to persist it. Grounded on
// internal/db's DB-wraps-*sql.DB shape and internal/lidar's
// AnalysisRunStore/TrackStore persistence pattern.
package storage

import (
	"database/sql"
	"io/fs"

	_ "modernc.org/sqlite"

	"github.com/wise-wildfire/firegrowth/internal/fireerrors"
)

// DB wraps a *sql.DB opened against the modernc.org/sqlite driver, the same
// embedding the teacher's own internal/db.DB uses.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the sqlite database at dsn and
// migrates it to the latest schema version in migrationsFS. dsn is passed
// straight to modernc.org/sqlite — a file path, or "file::memory:?cache=shared"
// for an ephemeral in-process store.
func Open(dsn string, migrationsFS fs.FS) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fireerrors.Wrap("storage", fireerrors.KindStorage, err)
	}
	// sqlite allows only one writer at a time; capping the pool at one
	// connection avoids SQLITE_BUSY under concurrent callers and, for a
	// shared-cache in-memory dsn, keeps every caller on the same database
	// instead of each connection seeing its own.
	sqlDB.SetMaxOpenConns(1)
	db := &DB{sqlDB}
	if err := db.MigrateUp(migrationsFS); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// CheckpointStore returns a store over db for StepCheckpoint records.
func (db *DB) CheckpointStore() *CheckpointStore {
	return &CheckpointStore{db: db.DB}
}

// CriticalPathStore returns a store over db for critical-path records.
func (db *DB) CriticalPathStore() *CriticalPathStore {
	return &CriticalPathStore{db: db.DB}
}

func wrapf(format string, args ...any) error {
	return fireerrors.New("storage", fireerrors.KindStorage, format, args...)
}
