package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/fridgechef/backend/internal/database"
	"github.com/pageza/fridgechef/backend/migrations"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	m := &migrator{db: db, fsys: migrations.FS, logger: logger}
	if err := m.ensureTable(ctx); err != nil {
		logger.Fatal("Failed to prepare migrations table", zap.Error(err))
	}

	if *rollback {
		err = m.rollbackLast(ctx)
	} else {
		err = m.up(ctx)
	}
	if err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}
}

type migrator struct {
	db     *sql.DB
	fsys   fs.FS
	logger *zap.Logger
}

func (m *migrator) ensureTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func (m *migrator) up(ctx context.Context) error {
	files, err := database.MigrationFiles(m.fsys)
	if err != nil {
		return err
	}

	for _, name := range files {
		var applied bool
		err := m.db.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)", name,
		).Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if applied {
			m.logger.Info("Migration already applied", zap.String("name", name))
			continue
		}

		if err := m.apply(ctx, name, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			return err
		}
		m.logger.Info("Applied migration", zap.String("name", name))
	}

	m.logger.Info("All migrations applied successfully")
	return nil
}

func (m *migrator) rollbackLast(ctx context.Context) error {
	var last string
	err := m.db.QueryRowContext(ctx,
		"SELECT name FROM schema_migrations ORDER BY applied_at DESC, name DESC LIMIT 1",
	).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		m.logger.Info("No migrations to rollback")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last migration: %w", err)
	}

	file := database.RollbackFile(last)
	if err := m.apply(ctx, file, "DELETE FROM schema_migrations WHERE name = $1", last); err != nil {
		return err
	}
	m.logger.Info("Rolled back migration", zap.String("name", last))
	return nil
}

// apply runs the SQL in file and the bookkeeping statement in one transaction.
func (m *migrator) apply(ctx context.Context, file, record, name string) error {
	content, err := fs.ReadFile(m.fsys, file)
	if err != nil {
		return fmt.Errorf("failed to read migration %s: %w", file, err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute %s: %w", file, err)
	}
	if _, err := tx.ExecContext(ctx, record, name); err != nil {
		return fmt.Errorf("failed to record %s: %w", name, err)
	}
	return tx.Commit()
}
