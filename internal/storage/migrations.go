package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					hash TEXT UNIQUE NOT NULL,
					date DATETIME NOT NULL,
					direction TEXT NOT NULL,
					amount INTEGER NOT NULL,
					source TEXT NOT NULL DEFAULT '',
					description TEXT NOT NULL DEFAULT '',
					sender TEXT NOT NULL DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
				`CREATE INDEX idx_transactions_direction ON transactions(direction)`,

				`CREATE TABLE IF NOT EXISTS savings_entries (
					id TEXT PRIMARY KEY,
					reference TEXT UNIQUE NOT NULL,
					type TEXT NOT NULL,
					amount INTEGER NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_savings_entries_created_at ON savings_entries(created_at)`,

				`CREATE TABLE IF NOT EXISTS users (
					id TEXT PRIMARY KEY,
					monthly_income INTEGER NOT NULL DEFAULT 0,
					monthly_expenses INTEGER NOT NULL DEFAULT 0,
					employment_type TEXT NOT NULL DEFAULT '',
					work_email TEXT NOT NULL DEFAULT '',
					profile_link TEXT NOT NULL DEFAULT '',
					business_name TEXT NOT NULL DEFAULT '',
					institution_name TEXT NOT NULL DEFAULT '',
					identity_verified BOOLEAN NOT NULL DEFAULT 0,
					employment_valid BOOLEAN NOT NULL DEFAULT 0,
					employment_entity TEXT NOT NULL DEFAULT '',
					employment_kind TEXT NOT NULL DEFAULT 'none',
					employment_pre_verified BOOLEAN NOT NULL DEFAULT 0,
					employment_confirmed BOOLEAN NOT NULL DEFAULT 0,
					onboarded_at DATETIME
				)`,

				`CREATE TABLE IF NOT EXISTS profiles (
					user_id TEXT PRIMARY KEY,
					credit_score INTEGER NOT NULL,
					safe_repayment INTEGER NOT NULL,
					badges TEXT NOT NULL DEFAULT '[]',
					updated_at DATETIME NOT NULL
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index savings entries by type for session counting",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_savings_entries_type ON savings_entries(type)`)
			if err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
