package postgresdb

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const (
	postgresDriver  = "postgres"
	migrationSource = "iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// newMigration returns a migrate instance reading the embedded migrations
// and applying them to the database at the given data source.
func newMigration(dataSource string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, err
	}

	pg := postgres.Postgres{}
	d, err := pg.Open(dataSource)
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance(migrationSource, src, postgresDriver, d)
}

func migrateDb(dataSource string) error {
	m, err := newMigration(dataSource)
	if err != nil {
		return err
	}
	//nolint
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
