// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "simple-split/internal/api"
	"simple-split/internal/api/handler"
	"simple-split/internal/config"
	"simple-split/internal/repository"
	"simple-split/internal/repository/postgres"
	"simple-split/internal/service"
	"simple-split/internal/util"
	"simple-split/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	GroupRepository       repository.GroupRepository
	ExpenseRepository     repository.ExpenseRepository
	DebtRepository        repository.DebtRepository
	ReceivableRepository  repository.ReceivableRepository
	WalletRepository      repository.WalletRepository
	TransactionRepository repository.TransactionRepository

	// Services
	UserService        service.UserService
	GroupService       service.GroupService
	ExpenseService     service.ExpenseService
	DebtService        service.DebtService
	MarketplaceService service.MarketplaceService
	WalletService      service.WalletService
	InsightService     service.InsightService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.GroupRepository = postgres.NewGroupRepository(app.DB)
	app.ExpenseRepository = postgres.NewExpenseRepository(app.DB)
	app.DebtRepository = postgres.NewDebtRepository(app.DB)
	app.ReceivableRepository = postgres.NewReceivableRepository(app.DB)
	app.WalletRepository = postgres.NewWalletRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// Services share the concrete db.BeginTx/CommitTx/RollbackTx from pkg/db.
	app.UserService = service.NewUserService(
		app.DB, app.DB,
		app.UserRepository, app.WalletRepository, app.DebtRepository, app.ReceivableRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.GroupService = service.NewGroupService(
		app.DB, app.DB,
		app.GroupRepository, app.UserRepository, app.ExpenseRepository, app.DebtRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.ExpenseService = service.NewExpenseService(
		app.DB, app.DB,
		app.ExpenseRepository, app.DebtRepository, app.GroupRepository, app.ReceivableRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.DebtService = service.NewDebtService(
		app.DB, app.DB,
		app.DebtRepository, app.ReceivableRepository, app.UserRepository,
		app.WalletRepository, app.TransactionRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.MarketplaceService = service.NewMarketplaceService(
		app.DB, app.DB,
		app.ReceivableRepository, app.DebtRepository, app.UserRepository,
		app.WalletRepository, app.TransactionRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.WalletService = service.NewWalletService(
		app.DB, app.DB,
		app.WalletRepository, app.TransactionRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.InsightService = service.NewInsightService(
		app.DB,
		app.UserRepository, app.WalletRepository, app.DebtRepository,
		app.ReceivableRepository, app.GroupRepository,
	)
	app.Logger.Info("Services initialized.")

	app.HTTPHandler = router.NewRouter(router.Handlers{
		User:        handler.NewUserHandler(app.UserService, app.WalletService, app.Logger),
		Group:       handler.NewGroupHandler(app.GroupService, app.ExpenseService, app.DebtService, app.Logger),
		Debt:        handler.NewDebtHandler(app.DebtService, app.Logger),
		Marketplace: handler.NewMarketplaceHandler(app.MarketplaceService, app.Logger),
		Insight:     handler.NewInsightHandler(app.InsightService, app.Logger),
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
