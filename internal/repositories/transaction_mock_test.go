package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestTransactionWriteRepository_Save_Mock(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()

	today := time.Now().Truncate(24 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "amount", "category", "created_at"}).
		AddRow(int64(1), "u1", "Coffee", "-4.50", "Food", today)

	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs("u1", "Coffee", decimal.RequireFromString("-4.50"), "Food").
		WillReturnRows(rows)

	repo := NewTransactionWriteRepository(db, 5*time.Second)
	txn, err := repo.Save(ctx, "u1", "Coffee", decimal.RequireFromString("-4.50"), "Food")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), txn.ID)
	assert.Equal(t, "u1", txn.UserID)
	assert.True(t, decimal.RequireFromString("-4.50").Equal(txn.Amount))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionWriteRepository_DeleteByID_NoRows_Mock(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectQuery("DELETE FROM transactions").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	repo := NewTransactionWriteRepository(db, 5*time.Second)
	_, err := repo.DeleteByID(ctx, 404)

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionReadRepository_GetSummaryByUserID_Mock(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"balance", "income", "expenses"}).
		AddRow("95.50", "100.00", "-4.50")

	mock.ExpectQuery("SELECT").
		WithArgs("u1").
		WillReturnRows(rows)

	repo := NewTransactionReadRepository(db, 5*time.Second)
	summary, err := repo.GetSummaryByUserID(ctx, "u1")

	assert.NoError(t, err)
	assert.True(t, summary.Balance.Equal(summary.Income.Add(summary.Expenses)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
