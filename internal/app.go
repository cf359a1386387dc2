// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "solvest-backend/internal/api"
	"solvest-backend/internal/api/handler"
	"solvest-backend/internal/config"
	"solvest-backend/internal/repository"
	"solvest-backend/internal/repository/memory"
	"solvest-backend/internal/repository/postgres"
	"solvest-backend/internal/service"
	"solvest-backend/internal/util"
	"solvest-backend/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Storage
	Store repository.Store

	// Services
	AccountService    service.AccountService
	InvestmentService service.InvestmentService
	DepositService    service.DepositService
	WithdrawalService service.WithdrawalService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Initialize Storage
	switch app.Config.StorageDriver {
	case config.StoragePostgres:
		database, err := db.NewPostgresDB(app.Config.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = database
		app.Store = postgres.NewStore(app.DB)
		app.Logger.Info("Database connection established.")
	case config.StorageMemory:
		app.Store = memory.NewStore()
		app.Logger.Warn("Using in-memory storage; data will not survive a restart.")
	default:
		return fmt.Errorf("unsupported storage driver: %s", app.Config.StorageDriver)
	}

	// 4. Initialize Services
	app.AccountService = service.NewAccountService(app.Store, app.Logger, nil)
	app.InvestmentService = service.NewInvestmentService(app.Store, app.Logger, nil, nil)
	app.DepositService = service.NewDepositService(app.Store, app.Logger)
	app.WithdrawalService = service.NewWithdrawalService(app.Store, app.Logger)
	app.Logger.Info("Services initialized.")

	// 5. Initialize HTTP Handlers and Router
	app.HTTPHandler = router.NewRouter(router.Handlers{
		Auth:       handler.NewAuthHandler(app.AccountService, app.Logger),
		User:       handler.NewUserHandler(app.AccountService, app.Logger),
		Investment: handler.NewInvestmentHandler(app.InvestmentService, app.Logger),
		Deposit:    handler.NewDepositHandler(app.DepositService, app.Logger),
		Withdrawal: handler.NewWithdrawalHandler(app.WithdrawalService, app.Logger),
	}, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
