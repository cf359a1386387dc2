// internal/api/handler/user.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"solvest-backend/internal/api/types"
	"solvest-backend/internal/domain"
	"solvest-backend/internal/service"
	"solvest-backend/internal/util"
)

// Transaction page defaults.
const (
	defaultTransactionLimit = 50
	maxTransactionLimit     = 200
)

// UserHandler serves the dashboard and ledger views.
type UserHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accounts service.AccountService, logger *slog.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, logger: logger}
}

// parseIDParam extracts a positive integer URL parameter.
func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, util.ErrInvalidInput
	}
	return id, nil
}

// Dashboard returns the user's aggregate account view.
// GET /api/user/{id}/dashboard
func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	view, err := h.accounts.Dashboard(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, view)
}

// Transactions returns a page of the user's ledger.
// GET /api/user/{id}/transactions
func (h *UserHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	limit := defaultTransactionLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= maxTransactionLimit {
			limit = parsed
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	transactions, total, err := h.accounts.Transactions(r.Context(), userID, limit, offset)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.PaginatedTransactions[domain.Transaction]{
		Transactions: transactions,
		Limit:        limit,
		Offset:       offset,
		TotalCount:   total,
	})
}
