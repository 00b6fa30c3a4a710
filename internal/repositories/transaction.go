package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"ledger-service/internal/logger"
	"ledger-service/internal/models"
)

// TransactionWriteRepository handles transaction write operations
type TransactionWriteRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewTransactionWriteRepository(db *sqlx.DB, timeout time.Duration) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, timeout: timeout}
}

// Save inserts a new transaction and returns the stored row,
// including the store-assigned id and created_at.
func (r *TransactionWriteRepository) Save(ctx context.Context, userID, title string, amount decimal.Decimal, category string) (*models.TransactionDB, error) {
	const query = `
		INSERT INTO transactions (user_id, title, amount, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, title, amount, category, created_at
	`
	args := []any{userID, title, amount, category}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var txn models.TransactionDB
	err := r.db.GetContext(ctx, &txn, query, args...)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", txn,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// DeleteByID removes the transaction with the given id and returns the
// deleted row. Returns sql.ErrNoRows when no such row exists.
func (r *TransactionWriteRepository) DeleteByID(ctx context.Context, id int64) (*models.TransactionDB, error) {
	const query = `
		DELETE FROM transactions
		WHERE id = $1
		RETURNING id, user_id, title, amount, category, created_at
	`

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var txn models.TransactionDB
	err := r.db.GetContext(ctx, &txn, query, id)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"result", txn,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// TransactionReadRepository handles transaction read operations
type TransactionReadRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewTransactionReadRepository(db *sqlx.DB, timeout time.Duration) *TransactionReadRepository {
	return &TransactionReadRepository{db: db, timeout: timeout}
}

// ListByUserID returns all transactions for a user, most recent first.
// Ties on created_at break by id so the order is stable across reads.
func (r *TransactionReadRepository) ListByUserID(ctx context.Context, userID string) ([]models.TransactionDB, error) {
	const query = `
		SELECT id, user_id, title, amount, category, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var txns []models.TransactionDB
	err := r.db.SelectContext(ctx, &txns, query, userID)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(txns),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return txns, nil
}

// GetSummaryByUserID computes balance, income, and expense totals for a user
// in a single statement, so the three sums share one snapshot. COALESCE keeps
// each total at zero when the user has no rows in that partition.
func (r *TransactionReadRepository) GetSummaryByUserID(ctx context.Context, userID string) (*models.Summary, error) {
	const query = `
		SELECT
			COALESCE(SUM(amount), 0)                              AS balance,
			COALESCE(SUM(amount) FILTER (WHERE amount > 0), 0)    AS income,
			COALESCE(SUM(amount) FILTER (WHERE amount < 0), 0)    AS expenses
		FROM transactions
		WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var summary models.Summary
	err := r.db.GetContext(ctx, &summary, query, userID)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", summary,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &summary, nil
}
