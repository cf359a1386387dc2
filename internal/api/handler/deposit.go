// internal/api/handler/deposit.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"solvest-backend/internal/domain"
	"solvest-backend/internal/service"
)

// DepositHandler serves deposit submission and processing.
type DepositHandler struct {
	deposits service.DepositService
	logger   *slog.Logger
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(deposits service.DepositService, logger *slog.Logger) *DepositHandler {
	return &DepositHandler{deposits: deposits, logger: logger}
}

// SubmitDepositRequest is the request body for a deposit submission.
type SubmitDepositRequest struct {
	UserID        int64           `json:"userId" validate:"required,gt=0"`
	TransactionID string          `json:"transactionId" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	ScreenshotURL *string         `json:"screenshotUrl" validate:"omitempty,url"`
}

// Submit records a claimed on-chain transfer as a pending deposit.
// POST /api/submit-deposit
func (h *DepositHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitDepositRequest
	if !decodeAndValidate(h.logger, w, r, &req) {
		return
	}

	deposit, err := h.deposits.Submit(r.Context(), req.UserID, req.TransactionID, req.Amount, req.ScreenshotURL)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"message": "Deposit submitted successfully. Awaiting admin approval.",
		"deposit": deposit,
	})
}

// ListByUser returns a user's deposit history.
// GET /api/deposits/{userId}
func (h *DepositHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userId")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	deposits, err := h.deposits.ListByUser(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"deposits": deposits})
}

// ProcessDepositRequest is the admin request body for deposit processing.
type ProcessDepositRequest struct {
	DepositID int64  `json:"depositId" validate:"required,gt=0"`
	Status    string `json:"status" validate:"required"`
}

// Process approves or rejects a pending deposit.
// POST /api/admin/process-deposit
func (h *DepositHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessDepositRequest
	if !decodeAndValidate(h.logger, w, r, &req) {
		return
	}

	deposit, err := h.deposits.Process(r.Context(), req.DepositID, domain.DepositStatus(req.Status))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Deposit " + req.Status + " successfully",
		"deposit": deposit,
	})
}
