package storage

import (
	"context"
	"fmt"

	"github.com/creditgauge/creditgauge/internal/model"
)

// AppendSavingsEntry appends one ledger movement. It reports false when an
// entry with the same reference was already applied; the caller treats that
// as a successful no-op so retried submissions never double-apply.
func (s *SQLiteStorage) AppendSavingsEntry(ctx context.Context, entry *model.SavingsEntry) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateSavingsEntry(entry); err != nil {
		return false, err
	}
	return s.appendSavingsEntry(ctx, s.db, entry)
}

func (s *SQLiteStorage) appendSavingsEntry(ctx context.Context, q querier, entry *model.SavingsEntry) (bool, error) {
	const query = `
		INSERT OR IGNORE INTO savings_entries (id, reference, type, amount, created_at)
		VALUES (?, ?, ?, ?, ?)`

	res, err := q.ExecContext(ctx, query,
		entry.ID,
		entry.Reference,
		string(entry.Type),
		entry.Amount,
		entry.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to append savings entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check insert result: %w", err)
	}

	return affected > 0, nil
}

// GetSavingsEntries returns ledger entries, newest first. A limit of 0
// returns all entries.
func (s *SQLiteStorage) GetSavingsEntries(ctx context.Context, limit int) ([]model.SavingsEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getSavingsEntries(ctx, s.db, limit)
}

func (s *SQLiteStorage) getSavingsEntries(ctx context.Context, q querier, limit int) ([]model.SavingsEntry, error) {
	query := `
		SELECT id, reference, type, amount, created_at
		FROM savings_entries
		ORDER BY created_at DESC, id DESC`
	args := []any{}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.SavingsEntry
	for rows.Next() {
		var entry model.SavingsEntry
		var entryType string
		if err := rows.Scan(&entry.ID, &entry.Reference, &entryType, &entry.Amount, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan savings entry: %w", err)
		}
		entry.Type = model.SavingsEntryType(entryType)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate savings entries: %w", err)
	}

	return entries, nil
}

// GetSavingsBalance derives the running balance from the signed entry sum.
func (s *SQLiteStorage) GetSavingsBalance(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return s.getSavingsBalance(ctx, s.db)
}

func (s *SQLiteStorage) getSavingsBalance(ctx context.Context, q querier) (int64, error) {
	const query = `
		SELECT COALESCE(SUM(CASE WHEN type = 'deposit' THEN amount ELSE -amount END), 0)
		FROM savings_entries`

	var balance int64
	if err := q.QueryRowContext(ctx, query).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to compute savings balance: %w", err)
	}

	return balance, nil
}

// CountDepositSessions counts deposit entries. Withdrawals do not count as
// sessions.
func (s *SQLiteStorage) CountDepositSessions(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return s.countDepositSessions(ctx, s.db)
}

func (s *SQLiteStorage) countDepositSessions(ctx context.Context, q querier) (int, error) {
	const query = `SELECT COUNT(*) FROM savings_entries WHERE type = 'deposit'`

	var count int
	if err := q.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count deposit sessions: %w", err)
	}

	return count, nil
}
