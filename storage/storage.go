package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rsmanito/restaurant-api/config"
	log "github.com/sirupsen/logrus"
)

// Storage is the Postgres pool behind the chef lookups.
type Storage struct {
	pool *pgxpool.Pool
}

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrate applies the embedded migrations to the database at cfg.DatabaseURL.
func (s *Storage) Migrate(cfg *config.Config) error {
	log.Info("Migrating database")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info("Database migrated")

	return nil
}

// SeedChef records username as a chef if it is not known yet.
func (s *Storage) SeedChef(ctx context.Context, username string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO chefs (username) VALUES ($1) ON CONFLICT (username) DO NOTHING`,
		username,
	)
	if err != nil {
		return fmt.Errorf("seed chef: %w", err)
	}

	return nil
}

// ChefExists reports whether username was seeded as a chef.
func (s *Storage) ChefExists(ctx context.Context, username string) (bool, error) {
	var exists bool

	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM chefs WHERE username = $1)`,
		username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("lookup chef: %w", err)
	}

	return exists, nil
}

// Ping checks that the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases every pooled connection.
func (s *Storage) Close() {
	s.pool.Close()
}

// New connects to cfg.DatabaseURL, migrates the schema and seeds the
// configured chef.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	st := &Storage{pool: pool}

	if err := st.Migrate(cfg); err != nil {
		pool.Close()
		return nil, err
	}

	if err := st.SeedChef(ctx, cfg.ChefUsername); err != nil {
		pool.Close()
		return nil, err
	}

	log.WithFields(log.Fields{
		"server": cfg.PostgresServer,
		"db":     cfg.PostgresDB,
	}).Info("Connected to database")

	return st, nil
}
