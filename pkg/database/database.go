package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/efoncier/survey-lab/pkg/lifecycle"
)

// ErrNotReady indicates the database has not completed startup.
var ErrNotReady = errors.New("database not ready")

// System provides access to the backing relational store.
type System interface {
	// Connection returns the underlying connection pool.
	Connection() *sql.DB

	// Start registers pool setup and migrations with the lifecycle
	// coordinator. The pool opens during WaitForStartup.
	Start(lc *lifecycle.Coordinator) error

	// Health verifies connectivity with a ping.
	Health(ctx context.Context) error
}

type system struct {
	config     *Config
	logger     *slog.Logger
	migrations fs.FS
	db         *sql.DB
	ready      atomic.Bool
}

// New creates a database system from configuration. Migrations are
// read from the provided filesystem during startup.
func New(config *Config, migrations fs.FS, logger *slog.Logger) System {
	return &system{
		config:     config,
		logger:     logger.With("system", "database"),
		migrations: migrations,
	}
}

func (s *system) Connection() *sql.DB {
	return s.db
}

func (s *system) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		if err := s.open(); err != nil {
			s.logger.Error("database startup failed", "error", err)
			return
		}
		s.ready.Store(true)
		s.logger.Info("database started",
			"host", s.config.Host,
			"name", s.config.Name,
		)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		s.ready.Store(false)
		if s.db != nil {
			if err := s.db.Close(); err != nil {
				s.logger.Error("database close failed", "error", err)
			}
		}
		s.logger.Info("database stopped")
	})

	return nil
}

func (s *system) Health(ctx context.Context) error {
	if !s.ready.Load() {
		return ErrNotReady
	}
	return s.db.PingContext(ctx)
}

func (s *system) open() error {
	db, err := sql.Open("pgx", s.config.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(s.config.MaxOpenConns)
	db.SetMaxIdleConns(s.config.MaxIdleConns)
	db.SetConnMaxLifetime(s.config.ConnMaxLifetimeDuration())

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ConnTimeoutDuration())
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	if err := s.migrate(db); err != nil {
		db.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	s.db = db
	return nil
}

func (s *system) migrate(db *sql.DB) error {
	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(s.migrations, ".")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, _, _ := m.Version()
	s.logger.Info("migrations applied", "version", version)
	return nil
}
