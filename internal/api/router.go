// internal/api/router.go
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"solvest-backend/internal/api/handler"
)

// DefaultTimeout bounds request handling time.
const DefaultTimeout = 30 * time.Second

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Investment *handler.InvestmentHandler
	Deposit    *handler.DepositHandler
	Withdrawal *handler.WithdrawalHandler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(DefaultTimeout))

	r.Route("/api", func(r chi.Router) {
		// Liveness check
		r.Get("/ping", func(w http.ResponseWriter, req *http.Request) {
			pingHandler(logger, w)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Auth.Signup)
			r.Post("/login", h.Auth.Login)
		})

		r.Route("/user/{id}", func(r chi.Router) {
			r.Get("/dashboard", h.User.Dashboard)
			r.Get("/transactions", h.User.Transactions)
		})

		r.Post("/submit-deposit", h.Deposit.Submit)
		r.Get("/deposits/{userId}", h.Deposit.ListByUser)

		r.Post("/invest", h.Investment.Invest)
		r.Get("/investment-status/{userId}", h.Investment.Status)
		r.Post("/update-investment-profits", h.Investment.RecomputeProfits)
		r.Post("/reinvest", h.Investment.Reinvest)

		r.Post("/request-withdrawal", h.Withdrawal.Request)
		r.Get("/withdrawals/{userId}", h.Withdrawal.ListByUser)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/process-withdrawal", h.Withdrawal.Process)
			r.Post("/process-deposit", h.Deposit.Process)
		})
	})

	return r
}

func pingHandler(logger *slog.Logger, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		logger.Error("Failed to write ping response", "error", err)
	}
}
