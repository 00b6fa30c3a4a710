package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"ledger-service/internal/logger"
	"ledger-service/internal/models"
)

var (
	// ErrValidation is returned when a transaction is missing required fields
	// or its amount does not fit the DECIMAL(10,2) domain.
	ErrValidation = errors.New("all fields are required")

	// ErrTransactionNotFound is returned when no transaction exists for a given id.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// maxAmount bounds amounts to at most 8 integer digits, per DECIMAL(10,2).
var maxAmount = decimal.New(1, 8)

// TransactionWriter defines methods for inserting and deleting transactions.
type TransactionWriter interface {
	Save(ctx context.Context, userID, title string, amount decimal.Decimal, category string) (*models.TransactionDB, error) // Inserts a transaction and returns the stored row
	DeleteByID(ctx context.Context, id int64) (*models.TransactionDB, error)                                                // Deletes a transaction by id and returns the deleted row
}

// TransactionReader defines methods for reading transactions and aggregates.
type TransactionReader interface {
	ListByUserID(ctx context.Context, userID string) ([]models.TransactionDB, error)  // Returns a user's transactions, most recent first
	GetSummaryByUserID(ctx context.Context, userID string) (*models.Summary, error)   // Returns balance/income/expense totals for a user
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TransactionService handles ledger operations and Kafka publishing.
type TransactionService struct {
	writeRepo   TransactionWriter
	readRepo    TransactionReader
	kafkaWriter KafkaWriter
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	writeRepo TransactionWriter,
	readRepo TransactionReader,
	kafkaWriter KafkaWriter,
) *TransactionService {
	return &TransactionService{
		writeRepo:   writeRepo,
		readRepo:    readRepo,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a ledger mutation to Kafka. Publishing is
// best-effort and never fails the originating request.
func (s *TransactionService) publishEvent(ctx context.Context, operation string, txn *models.TransactionDB) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "transaction_id", txn.ID)
		return
	}

	event := models.TransactionEvent{
		EventID:       uuid.NewString(),
		Timestamp:     time.Now().Unix(),
		Operation:     operation,
		TransactionID: txn.ID,
		UserID:        txn.UserID,
		Amount:        txn.Amount,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Transaction event published", "event_id", event.EventID, "operation", operation, "transaction_id", txn.ID)
	}
}

// validAmount reports whether the amount fits the DECIMAL(10,2) contract:
// scale at most 2 and fewer than 9 integer digits.
func validAmount(amount decimal.Decimal) bool {
	if amount.Exponent() < -2 {
		return false
	}
	return amount.Abs().LessThan(maxAmount)
}

// Create validates and stores a new transaction, then publishes it.
func (s *TransactionService) Create(ctx context.Context, userID, title string, amount decimal.Decimal, category string) (*models.TransactionDB, error) {
	if userID == "" || title == "" || category == "" {
		logger.Log.Warnw("missing required transaction fields", "user_id", userID, "title", title, "category", category)
		return nil, ErrValidation
	}
	if !validAmount(amount) {
		logger.Log.Warnw("invalid transaction amount", "amount", amount)
		return nil, ErrValidation
	}

	txn, err := s.writeRepo.Save(ctx, userID, title, amount, category)
	if err != nil {
		logger.Log.Errorw("failed to save transaction", "user_id", userID, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, models.OperationCreated, txn)

	return txn, nil
}

// List returns all transactions for a user. A user without transactions
// yields an empty slice, not an error.
func (s *TransactionService) List(ctx context.Context, userID string) ([]models.TransactionDB, error) {
	txns, err := s.readRepo.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "user_id", userID, "error", err)
		return nil, err
	}
	if txns == nil {
		txns = []models.TransactionDB{}
	}
	return txns, nil
}

// Delete removes a transaction by id, publishes the deletion, and returns
// the deleted row. Returns ErrTransactionNotFound when the id is unknown.
func (s *TransactionService) Delete(ctx context.Context, id int64) (*models.TransactionDB, error) {
	txn, err := s.writeRepo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		logger.Log.Errorw("failed to delete transaction", "id", id, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, models.OperationDeleted, txn)

	return txn, nil
}

// Summary returns balance, income, and expense totals for a user.
func (s *TransactionService) Summary(ctx context.Context, userID string) (*models.Summary, error) {
	summary, err := s.readRepo.GetSummaryByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get summary", "user_id", userID, "error", err)
		return nil, err
	}
	return summary, nil
}
