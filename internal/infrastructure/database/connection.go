package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/eslkit/vocadeck/internal/infrastructure/config"
)

// NewConnection opens the configured database and verifies it is
// reachable. The returned cleanup closes the handle.
func NewConnection(cfg *config.Config) (*sql.DB, func(), error) {
	driver := cfg.Database.Driver
	switch driver {
	case "sqlite3":
	case "postgres", "pgx":
		driver = "pgx"
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	db, err := sql.Open(driver, cfg.DatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	cleanup := func() { _ = db.Close() }
	return db, cleanup, nil
}
