package sqlite

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	msqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/yukti/platform/internal/platform/store/drivers/sqlite/migrations"
)

// ApplyMigrations brings the schema up to date from the migrations embedded
// in the binary. An already current schema is not an error.
func (s *Store) ApplyMigrations() error {
	driver, err := msqlite.WithInstance(s.db, &msqlite.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return err
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// MigrationVersion reports the applied schema version and whether the last
// migration left the schema dirty.
func (s *Store) MigrationVersion() (uint, bool, error) {
	driver, err := msqlite.WithInstance(s.db, &msqlite.Config{})
	if err != nil {
		return 0, false, err
	}
	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return 0, false, err
	}
	instance, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := instance.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}
