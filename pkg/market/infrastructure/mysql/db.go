package mysql

import (
	"embed"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	maxOpenConns    = 10
	connMaxLifetime = 5 * time.Minute
)

// Open connects to MySQL. Timestamps are parsed into time.Time and updates report
// matched rows, so an unchanged row is not mistaken for a missing one.
func Open(dsn string) (*sqlx.DB, error) {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "parse database dsn")
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.ClientFoundRows = true

	db, err := sqlx.Connect("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, errors.Wrap(err, "connect to database")
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	return db, nil
}

func Migrate(db *sqlx.DB) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "open migrations")
	}
	driver, err := migratemysql.WithInstance(db.DB, &migratemysql.Config{})
	if err != nil {
		return errors.Wrap(err, "create migration driver")
	}
	m, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return errors.Wrap(err, "create migrator")
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}
