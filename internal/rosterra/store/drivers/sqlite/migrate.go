package sqlite

import (
	"database/sql"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/store/drivers/sqlite/migrations"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/store/drivers/sqlstore"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
)

// ApplyMigrations brings the sqlite schema up to date.
func ApplyMigrations(db *sql.DB) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return err
	}
	return sqlstore.RunMigrations(migrations.Migrations, "sqlite", driver)
}
