package sqlstore

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// RunMigrations applies every pending up migration found in files to the
// database behind driver. name is the golang-migrate database name used in
// log and error messages.
func RunMigrations(files fs.FS, name string, driver database.Driver) error {
	source, err := iofs.New(files, ".")
	if err != nil {
		return fmt.Errorf("%s migrations: open source: %w", name, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, name, driver)
	if err != nil {
		return fmt.Errorf("%s migrations: %w", name, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s migrations: up: %w", name, err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return nil
	case err != nil:
		return fmt.Errorf("%s migrations: read version: %w", name, err)
	case dirty:
		return fmt.Errorf("%s migrations: schema version %d is dirty", name, version)
	}
	return nil
}
