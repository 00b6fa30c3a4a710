package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"ledger-service/internal/models"
	"ledger-service/internal/services"
)

func TestDeleteTransactionHandler(t *testing.T) {
	tests := []struct {
		name               string
		id                 string
		setupMocks         func(mockDeleter *MockTransactionDeleter)
		expectedStatusCode int
		expectedMessage    string
	}{
		{
			name: "successful deletion",
			id:   "5",
			setupMocks: func(mockDeleter *MockTransactionDeleter) {
				mockDeleter.EXPECT().Delete(gomock.Any(), int64(5)).Return(&models.TransactionDB{
					ID:       5,
					UserID:   "u1",
					Title:    "Coffee",
					Amount:   decimal.RequireFromString("-4.50"),
					Category: "Food",
				}, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedMessage:    "Transaction deleted successfully",
		},
		{
			name:               "non-integer id",
			id:                 "abc",
			setupMocks:         func(mockDeleter *MockTransactionDeleter) {},
			expectedStatusCode: http.StatusBadRequest,
			expectedMessage:    "Invalid transaction ID.",
		},
		{
			name: "unknown id",
			id:   "404",
			setupMocks: func(mockDeleter *MockTransactionDeleter) {
				mockDeleter.EXPECT().Delete(gomock.Any(), int64(404)).Return(nil, services.ErrTransactionNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
			expectedMessage:    "Transaction not found.",
		},
		{
			name: "internal error",
			id:   "5",
			setupMocks: func(mockDeleter *MockTransactionDeleter) {
				mockDeleter.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil, assert.AnError)
			},
			expectedStatusCode: http.StatusInternalServerError,
			expectedMessage:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDeleter := NewMockTransactionDeleter(ctrl)
			tt.setupMocks(mockDeleter)

			handler := NewDeleteTransactionHandler(mockDeleter)

			req := newChiRequest(http.MethodDelete, "/api/transactions/"+tt.id, "id", tt.id)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)

			var body map[string]string
			err := json.NewDecoder(rr.Body).Decode(&body)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedMessage, body["message"])
		})
	}
}
