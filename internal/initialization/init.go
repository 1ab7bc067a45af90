// Package initialization sets up the persistence backend selected by
// configuration: opening the SQLite database and applying migrations, or
// preparing the file-store directory.
package initialization

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate"
	"github.com/golang-migrate/migrate/database/sqlite3"
	_ "github.com/golang-migrate/migrate/source/file"
	"github.com/rs/zerolog/log"

	"github.com/hatakou1021-design/sns-site/internal/config"
	"github.com/hatakou1021-design/sns-site/internal/kv"
	"github.com/hatakou1021-design/sns-site/internal/kv/filekv"
	"github.com/hatakou1021-design/sns-site/internal/kv/memkv"
	"github.com/hatakou1021-design/sns-site/internal/kv/sqlitekv"
)

// SetupDB applies all remaining migrations against the open database.
func SetupDB(db *sql.DB, folder, dbname string) error {
	log.Info().Msg("starting migrations")
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		log.Error().Err(err).Msg("failed to create sqlite3 migration driver")
		return err
	}

	mig, err := migrate.NewWithDatabaseInstance(
		"file://"+folder,
		dbname,
		driver,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create Migrate object")
		return err
	}

	err = mig.Up()
	if err != nil && err != migrate.ErrNoChange {
		log.Error().Err(err).Msg("failed to run migrations")
		return err
	}

	return nil
}

func OpenDB(connString string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", connString)
	if err != nil {
		log.Error().Err(err).Str("connection string", connString).Msg("failed to open database")
	}
	return db, err
}

// NewStore builds the key-value store for the configured backend. The
// returned closer is non-nil only for the sqlite backend.
func NewStore(cfg *config.Configuration) (kv.Store, func() error, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		db, err := OpenDB(cfg.DbPath)
		if err != nil {
			return nil, nil, err
		}
		if err := SetupDB(db, cfg.MigrationsFolder, cfg.DbPath); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlitekv.New(db), db.Close, nil
	case config.StoreFile:
		store, err := filekv.New(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case config.StoreMemory:
		return memkv.New(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
