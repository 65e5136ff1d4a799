package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/creditgauge/creditgauge/internal/service"
)

// SaveTransactions saves multiple transactions to the database. Transactions
// whose hash already exists are silently skipped, so re-scanning the same
// inbox never duplicates records.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveTransactions(ctx, tx, transactions); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) saveTransactions(ctx context.Context, q querier, transactions []model.Transaction) error {
	const query = `
		INSERT OR IGNORE INTO transactions (
			id, hash, date, direction, amount, source, description, sender
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	for _, txn := range transactions {
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}

		_, err := q.ExecContext(ctx, query,
			txn.ID,
			txn.Hash,
			txn.Date,
			string(txn.Direction),
			txn.Amount,
			txn.Source,
			txn.Description,
			txn.Sender,
		)
		if err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	return nil
}

// GetTransactions returns transactions matching the filter in
// reverse-chronological order.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getTransactions(ctx, s.db, filter)
}

func (s *SQLiteStorage) getTransactions(ctx context.Context, q querier, filter service.TransactionFilter) ([]model.Transaction, error) {
	query := `
		SELECT id, hash, date, direction, amount, source, description, sender
		FROM transactions
		WHERE 1=1`
	args := []any{}

	if filter.StartDate != nil {
		query += " AND date >= ?"
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += " AND date <= ?"
		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY date DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var direction string
		if err := rows.Scan(
			&txn.ID,
			&txn.Hash,
			&txn.Date,
			&direction,
			&txn.Amount,
			&txn.Source,
			&txn.Description,
			&txn.Sender,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Direction = model.TransactionDirection(direction)
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// GetTransactionTotals aggregates credit and debit amounts over [start, end].
func (s *SQLiteStorage) GetTransactionTotals(ctx context.Context, start, end time.Time) (*service.TransactionTotals, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getTransactionTotals(ctx, s.db, start, end)
}

func (s *SQLiteStorage) getTransactionTotals(ctx context.Context, q querier, start, end time.Time) (*service.TransactionTotals, error) {
	const query = `
		SELECT
			COALESCE(SUM(CASE WHEN direction = 'credit' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN direction = 'debit' THEN amount ELSE 0 END), 0),
			COUNT(*)
		FROM transactions
		WHERE date >= ? AND date <= ?`

	totals := &service.TransactionTotals{}
	err := q.QueryRowContext(ctx, query, start, end).Scan(&totals.Credits, &totals.Debits, &totals.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	return totals, nil
}
