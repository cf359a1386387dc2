// internal/api/handler/investment.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"solvest-backend/internal/accrual"
	"solvest-backend/internal/service"
)

// InvestmentHandler serves the investment lifecycle endpoints.
type InvestmentHandler struct {
	investments service.InvestmentService
	logger      *slog.Logger
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investments service.InvestmentService, logger *slog.Logger) *InvestmentHandler {
	return &InvestmentHandler{investments: investments, logger: logger}
}

// InvestRequest is the request body for starting an investment.
type InvestRequest struct {
	UserID int64           `json:"userId" validate:"required,gt=0"`
	Amount decimal.Decimal `json:"amount"`
}

// Invest starts a new investment.
// POST /api/invest
func (h *InvestmentHandler) Invest(w http.ResponseWriter, r *http.Request) {
	var req InvestRequest
	if !decodeAndValidate(h.logger, w, r, &req) {
		return
	}

	investment, err := h.investments.Start(r.Context(), req.UserID, req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"investment":          investment,
		"dailyReturn":         investment.DailyReturn,
		"totalExpectedReturn": investment.DailyReturn.Mul(decimal.NewFromInt(accrual.TermDays)),
	})
}

// Status returns every investment for a user with accrual fields computed on
// read.
// GET /api/investment-status/{userId}
func (h *InvestmentHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userId")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	views, err := h.investments.Status(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"investments": views})
}

// RecomputeProfits runs the batch accrual sweep. The internal scheduler calls
// the same service method; this endpoint exists for external cron setups.
// POST /api/update-investment-profits
func (h *InvestmentHandler) RecomputeProfits(w http.ResponseWriter, r *http.Request) {
	updated, err := h.investments.RecomputeProfits(r.Context())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": "Investment profits updated successfully",
		"updated": updated,
	})
}

// ReinvestRequest is the request body for reinvesting a matured position.
type ReinvestRequest struct {
	UserID       int64           `json:"userId" validate:"required,gt=0"`
	InvestmentID int64           `json:"investmentId" validate:"required,gt=0"`
	ReinvestType string          `json:"reinvestType" validate:"required,oneof=profits capital both"`
	Amount       decimal.Decimal `json:"amount"`
}

// Reinvest rolls a matured investment into a new one.
// POST /api/reinvest
func (h *InvestmentHandler) Reinvest(w http.ResponseWriter, r *http.Request) {
	var req ReinvestRequest
	if !decodeAndValidate(h.logger, w, r, &req) {
		return
	}

	investment, err := h.investments.Reinvest(r.Context(), req.UserID, req.InvestmentID, req.ReinvestType, req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"investment":          investment,
		"dailyReturn":         investment.DailyReturn,
		"totalExpectedReturn": investment.DailyReturn.Mul(decimal.NewFromInt(accrual.TermDays)),
	})
}
