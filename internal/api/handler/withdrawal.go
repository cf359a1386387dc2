// internal/api/handler/withdrawal.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"solvest-backend/internal/domain"
	"solvest-backend/internal/service"
)

// WithdrawalHandler serves withdrawal requests and admin processing.
type WithdrawalHandler struct {
	withdrawals service.WithdrawalService
	logger      *slog.Logger
}

// NewWithdrawalHandler creates a new WithdrawalHandler.
func NewWithdrawalHandler(withdrawals service.WithdrawalService, logger *slog.Logger) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawals: withdrawals, logger: logger}
}

// WithdrawalRequestBody is the request body for a withdrawal request.
type WithdrawalRequestBody struct {
	UserID        int64           `json:"userId" validate:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount"`
	WalletAddress string          `json:"walletAddress" validate:"required,min=32"`
}

// Request creates a pending withdrawal request.
// POST /api/request-withdrawal
func (h *WithdrawalHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req WithdrawalRequestBody
	if !decodeAndValidate(h.logger, w, r, &req) {
		return
	}

	withdrawal, err := h.withdrawals.Request(r.Context(), req.UserID, req.Amount, req.WalletAddress)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"message":    "Withdrawal request submitted successfully. Awaiting admin approval.",
		"withdrawal": withdrawal,
	})
}

// ListByUser returns a user's withdrawal history.
// GET /api/withdrawals/{userId}
func (h *WithdrawalHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userId")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	withdrawals, err := h.withdrawals.ListByUser(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"withdrawals": withdrawals})
}

// ProcessWithdrawalRequest is the admin request body for withdrawal processing.
type ProcessWithdrawalRequest struct {
	WithdrawalID int64   `json:"withdrawalId" validate:"required,gt=0"`
	Status       string  `json:"status" validate:"required"`
	TxHash       *string `json:"txHash"`
}

// Process settles or rejects a pending withdrawal request.
// POST /api/admin/process-withdrawal
func (h *WithdrawalHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessWithdrawalRequest
	if !decodeAndValidate(h.logger, w, r, &req) {
		return
	}

	withdrawal, err := h.withdrawals.Process(r.Context(), req.WithdrawalID, domain.WithdrawalStatus(req.Status), req.TxHash)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message":    "Withdrawal " + req.Status + " successfully",
		"withdrawal": withdrawal,
	})
}
