package postgres

import (
	"database/sql"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/store/drivers/postgres/migrations"
	"github.com/aussiebroadwan/rosterra/internal/rosterra/store/drivers/sqlstore"
	"github.com/golang-migrate/migrate/v4/database/postgres"
)

// ApplyMigrations brings the postgres schema up to date.
func ApplyMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}
	return sqlstore.RunMigrations(migrations.Migrations, "postgres", driver)
}
