package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ledger-service/internal/logger"
	"ledger-service/internal/models"
)

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	List(ctx context.Context, userID string) ([]models.TransactionDB, error)
}

// ListTransactionsErrorResponse represents an error response for listing
// swagger:model ListTransactionsErrorResponse
type ListTransactionsErrorResponse struct {
	// Error message
	// default: Internal server error
	Message string `json:"message"`
}

// NewListTransactionsHandler returns an HTTP handler for listing a user's transactions.
// @Summary List transactions
// @Description Returns all transactions for a user, most recent first. A user without transactions gets an empty array.
// @Tags transactions
// @Produce json
// @Param userId path string true "User identifier"
// @Success 200 {array} models.TransactionDB "Transactions, most recent first"
// @Failure 429 {object} middlewares.RateLimitErrorResponse "Too many requests"
// @Failure 500 {object} handlers.ListTransactionsErrorResponse "Internal server error"
// @Router /api/transactions/{userId} [get]
func NewListTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userId")

		w.Header().Set("Content-Type", "application/json")

		txns, err := svc.List(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("failed to list transactions", "user_id", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ListTransactionsErrorResponse{
				Message: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(txns)
	}
}
