package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"ledger-service/internal/logger"
	"ledger-service/internal/models"
	"ledger-service/internal/services"
)

// TransactionCreator defines the interface that the service must implement.
type TransactionCreator interface {
	Create(ctx context.Context, userID, title string, amount decimal.Decimal, category string) (*models.TransactionDB, error)
}

// CreateTransactionRequest represents the JSON body for creating a transaction
// swagger:model CreateTransactionRequest
type CreateTransactionRequest struct {
	// Short description of the transaction
	// required: true
	// default: Coffee
	Title string `json:"title"`

	// Signed amount: positive income, negative expense
	// required: true
	// default: -4.50
	Amount *decimal.Decimal `json:"amount"`

	// Free-form category label
	// required: true
	// default: Food
	Category string `json:"category"`

	// Identifier of the owning user
	// required: true
	// default: u1
	UserID string `json:"user_id"`
}

// CreateTransactionErrorResponse represents an error response for creation
// swagger:model CreateTransactionErrorResponse
type CreateTransactionErrorResponse struct {
	// Error message
	// default: All fields are required
	Message string `json:"message"`
}

// NewCreateTransactionHandler returns an HTTP handler for creating a transaction.
// @Summary Create a transaction
// @Description Stores a new transaction for a user. All fields are required; the amount must fit DECIMAL(10,2).
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body handlers.CreateTransactionRequest true "Transaction to create"
// @Success 201 {object} models.TransactionDB "Created transaction"
// @Failure 400 {object} handlers.CreateTransactionErrorResponse "Missing or invalid fields"
// @Failure 429 {object} middlewares.RateLimitErrorResponse "Too many requests"
// @Failure 500 {object} handlers.CreateTransactionErrorResponse "Internal server error"
// @Router /api/transactions [post]
func NewCreateTransactionHandler(svc TransactionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTransactionRequest

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode create request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateTransactionErrorResponse{
				Message: "All fields are required",
			})
			return
		}

		// A nil amount means the field was absent; zero is a valid value.
		if req.Amount == nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateTransactionErrorResponse{
				Message: "All fields are required",
			})
			return
		}

		txn, err := svc.Create(r.Context(), req.UserID, req.Title, *req.Amount, req.Category)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrValidation):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(CreateTransactionErrorResponse{
					Message: "All fields are required",
				})
			default:
				logger.Log.Errorw("failed to create transaction", "user_id", req.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(CreateTransactionErrorResponse{
					Message: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(txn)
	}
}
