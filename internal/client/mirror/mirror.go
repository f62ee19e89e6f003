// Package mirror is the client's durable local copy of server state: the
// session (token and cached account) and named collections of roster
// profiles. It lives in a single sqlite file.
package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aussiebroadwan/rosterra/internal/client/mirror/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Collection names.
const (
	// Profiles are purely local working records that are never sent to the
	// server.
	Profiles = "profiles"

	// Roasters mirrors the server's roster plus any records that could only
	// be stored locally.
	Roasters = "roasters"
)

var ErrNotFound = errors.New("mirror: not found")

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

type Mirror struct {
	db *sql.DB
}

// Open opens (creating if needed) the mirror at path and migrates it. A
// path starting with "file:" is passed to the driver unchanged.
func Open(ctx context.Context, path string) (*Mirror, error) {
	dsn := path
	if len(path) < 5 || path[:5] != "file:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("mirror: create dir: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mirror: migrate: %w", err)
	}
	return &Mirror{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (m *Mirror) Close() error { return m.db.Close() }
