package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ledger-service/internal/logger"
	"ledger-service/internal/models"
	"ledger-service/internal/services"
)

// TransactionDeleter defines the interface that the service must implement.
type TransactionDeleter interface {
	Delete(ctx context.Context, id int64) (*models.TransactionDB, error)
}

// DeleteTransactionResponse represents a successful deletion response
// swagger:model DeleteTransactionResponse
type DeleteTransactionResponse struct {
	// Success message
	// default: Transaction deleted successfully
	Message string `json:"message"`
}

// DeleteTransactionErrorResponse represents an error response for deletion
// swagger:model DeleteTransactionErrorResponse
type DeleteTransactionErrorResponse struct {
	// Error message
	// default: Transaction not found.
	Message string `json:"message"`
}

// NewDeleteTransactionHandler returns an HTTP handler for deleting a transaction by id.
// @Summary Delete a transaction
// @Description Removes a transaction by its numeric id. A non-integer id is a validation error, an unknown id is not found.
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction id"
// @Success 200 {object} handlers.DeleteTransactionResponse "Transaction deleted"
// @Failure 400 {object} handlers.DeleteTransactionErrorResponse "Invalid transaction id"
// @Failure 404 {object} handlers.DeleteTransactionErrorResponse "Transaction not found"
// @Failure 429 {object} middlewares.RateLimitErrorResponse "Too many requests"
// @Failure 500 {object} handlers.DeleteTransactionErrorResponse "Internal server error"
// @Router /api/transactions/{id} [delete]
func NewDeleteTransactionHandler(svc TransactionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DeleteTransactionErrorResponse{
				Message: "Invalid transaction ID.",
			})
			return
		}

		_, err = svc.Delete(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTransactionNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(DeleteTransactionErrorResponse{
					Message: "Transaction not found.",
				})
			default:
				logger.Log.Errorw("failed to delete transaction", "id", id, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(DeleteTransactionErrorResponse{
					Message: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeleteTransactionResponse{
			Message: "Transaction deleted successfully",
		})
	}
}
