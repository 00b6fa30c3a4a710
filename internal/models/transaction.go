package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts serialize as JSON numbers, matching the DECIMAL(10,2) column.
	decimal.MarshalJSONWithoutQuotes = true
}

// Operation types published to the transaction event stream.
const (
	OperationCreated = "created"
	OperationDeleted = "deleted"
)

// TransactionDB represents a transaction row in the database
type TransactionDB struct {
	ID        int64           `json:"id" db:"id"`                 // Store-assigned identifier, never reused after deletion
	UserID    string          `json:"user_id" db:"user_id"`       // Identifier of the owning user
	Title     string          `json:"title" db:"title"`           // Short description of the transaction
	Amount    decimal.Decimal `json:"amount" db:"amount"`         // Signed amount: positive income, negative expense
	Category  string          `json:"category" db:"category"`     // Free-form category label
	CreatedAt time.Time       `json:"created_at" db:"created_at"` // Date of insertion, the listing sort key
}

// TransactionEvent is the message published to Kafka after a ledger mutation.
type TransactionEvent struct {
	EventID       string          `json:"event_id"`       // EventID is a unique identifier for the event.
	Timestamp     int64           `json:"timestamp"`      // Timestamp is the Unix timestamp (in seconds) when the mutation was applied.
	Operation     string          `json:"operation"`      // Operation is either "created" or "deleted".
	TransactionID int64           `json:"transaction_id"` // TransactionID is the id of the affected row.
	UserID        string          `json:"user_id"`        // UserID is the identifier of the transaction's owner.
	Amount        decimal.Decimal `json:"amount"`         // Amount is the signed monetary value of the transaction.
}
