package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ledger-service/internal/logger"
	"ledger-service/internal/models"
)

// TransactionSummarizer defines the interface that the service must implement.
type TransactionSummarizer interface {
	Summary(ctx context.Context, userID string) (*models.Summary, error)
}

// SummaryErrorResponse represents an error response for the summary endpoint
// swagger:model SummaryErrorResponse
type SummaryErrorResponse struct {
	// Error message
	// default: Internal server error
	Message string `json:"message"`
}

// NewSummaryHandler returns an HTTP handler for a user's balance summary.
// @Summary Get balance summary
// @Description Returns balance, income, and expense totals for a user. Each total is 0 for a user without matching transactions.
// @Tags transactions
// @Produce json
// @Param userId path string true "User identifier"
// @Success 200 {object} models.Summary "Balance, income, and expense totals"
// @Failure 429 {object} middlewares.RateLimitErrorResponse "Too many requests"
// @Failure 500 {object} handlers.SummaryErrorResponse "Internal server error"
// @Router /api/transactions/summary/{userId} [get]
func NewSummaryHandler(svc TransactionSummarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userId")

		w.Header().Set("Content-Type", "application/json")

		summary, err := svc.Summary(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("failed to get summary", "user_id", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(SummaryErrorResponse{
				Message: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(summary)
	}
}
