package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"ledger-service/internal/logger"
)

// --- Setup Postgres ---
func setupPostgres(t *testing.T) (*sqlx.DB, func()) {
	logger.Initialize("debug")
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "secret", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, err := container.Host(ctx)
	assert.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	assert.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s:%s/testdb?sslmode=disable", host, port.Port())
	db, err := sqlx.Connect("pgx", dsn)
	assert.NoError(t, err)

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		user_id VARCHAR(255) NOT NULL,
		title VARCHAR(255) NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		category VARCHAR(255) NOT NULL,
		created_at DATE NOT NULL DEFAULT CURRENT_DATE
	);`

	_, err = db.Exec(schema)
	assert.NoError(t, err)

	return db, func() {
		db.Close()
		container.Terminate(ctx)
	}
}

func TestTransactionWriteRepository_SaveAndDelete(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewTransactionWriteRepository(db, 5*time.Second)

	first, err := writer.Save(ctx, "u1", "Coffee", decimal.RequireFromString("-4.50"), "Food")
	assert.NoError(t, err)
	assert.Equal(t, "u1", first.UserID)
	assert.Equal(t, "Coffee", first.Title)
	assert.True(t, decimal.RequireFromString("-4.50").Equal(first.Amount))
	assert.Equal(t, "Food", first.Category)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), first.CreatedAt.Format("2006-01-02"))

	second, err := writer.Save(ctx, "u1", "Salary", decimal.RequireFromString("2500.00"), "Work")
	assert.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	deleted, err := writer.DeleteByID(ctx, first.ID)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, deleted.ID)
	assert.Equal(t, "Coffee", deleted.Title)

	// Deleting the same id again reports no rows
	_, err = writer.DeleteByID(ctx, first.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// The freed id is never reused by a later insert
	third, err := writer.Save(ctx, "u1", "Tea", decimal.RequireFromString("-2.00"), "Food")
	assert.NoError(t, err)
	assert.Greater(t, third.ID, second.ID)
}

func TestTransactionWriteRepository_ConcurrentInserts(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewTransactionWriteRepository(db, 5*time.Second)

	const n = 20
	ids := make(chan int64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			txn, err := writer.Save(ctx, "u1", "Bulk", decimal.RequireFromString("1.00"), "Test")
			assert.NoError(t, err)
			ids <- txn.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, n)
	for id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestTransactionReadRepository_ListByUserID(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	seed := []struct {
		userID    string
		title     string
		amount    string
		createdAt string
	}{
		{"u1", "Old expense", "-10.00", "2024-01-01"},
		{"u1", "Recent income", "100.00", "2024-03-01"},
		{"u1", "Same-day expense", "-5.00", "2024-03-01"},
		{"u2", "Other user", "-99.00", "2024-03-02"},
	}
	for _, s := range seed {
		_, err := db.Exec(
			`INSERT INTO transactions (user_id, title, amount, category, created_at) VALUES ($1, $2, $3, $4, $5)`,
			s.userID, s.title, s.amount, "Test", s.createdAt,
		)
		assert.NoError(t, err)
	}

	reader := NewTransactionReadRepository(db, 5*time.Second)

	txns, err := reader.ListByUserID(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, txns, 3)

	// Most recent first, same-day ties broken by insertion order descending
	assert.Equal(t, "Same-day expense", txns[0].Title)
	assert.Equal(t, "Recent income", txns[1].Title)
	assert.Equal(t, "Old expense", txns[2].Title)

	// No rows from other owners
	for _, txn := range txns {
		assert.Equal(t, "u1", txn.UserID)
	}

	// Unknown owner yields an empty result, not an error
	empty, err := reader.ListByUserID(ctx, "nobody")
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTransactionReadRepository_GetSummaryByUserID(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewTransactionWriteRepository(db, 5*time.Second)
	reader := NewTransactionReadRepository(db, 5*time.Second)

	_, err := writer.Save(ctx, "u1", "Salary", decimal.RequireFromString("2500.00"), "Work")
	assert.NoError(t, err)
	_, err = writer.Save(ctx, "u1", "Coffee", decimal.RequireFromString("-4.50"), "Food")
	assert.NoError(t, err)
	_, err = writer.Save(ctx, "u1", "Rent", decimal.RequireFromString("-800.00"), "Housing")
	assert.NoError(t, err)
	_, err = writer.Save(ctx, "u2", "Other", decimal.RequireFromString("77.00"), "Misc")
	assert.NoError(t, err)

	summary, err := reader.GetSummaryByUserID(ctx, "u1")
	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2500.00").Equal(summary.Income))
	assert.True(t, decimal.RequireFromString("-804.50").Equal(summary.Expenses))
	assert.True(t, decimal.RequireFromString("1695.50").Equal(summary.Balance))
	assert.True(t, summary.Balance.Equal(summary.Income.Add(summary.Expenses)))
}

func TestTransactionReadRepository_GetSummaryByUserID_NoRows(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	reader := NewTransactionReadRepository(db, 5*time.Second)

	summary, err := reader.GetSummaryByUserID(ctx, "nobody")
	assert.NoError(t, err)
	assert.True(t, summary.Balance.IsZero())
	assert.True(t, summary.Income.IsZero())
	assert.True(t, summary.Expenses.IsZero())
}
