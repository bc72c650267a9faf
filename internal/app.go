// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "investx-ledger/internal/api"
	"investx-ledger/internal/api/handler"
	"investx-ledger/internal/config"
	"investx-ledger/internal/repository"
	"investx-ledger/internal/repository/postgres"
	"investx-ledger/internal/service"
	"investx-ledger/internal/util"
	"investx-ledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	AccountRepository    repository.AccountRepository
	PackageRepository    repository.PackageRepository
	InvestmentRepository repository.InvestmentRepository
	WithdrawalRepository repository.WithdrawalRepository
	LedgerRepository     repository.LedgerRepository

	// Services
	Ledger            service.WalletLedger
	Referrals         service.ReferralRegistry
	AccountService    service.AccountService
	InvestmentService service.InvestmentService
	WithdrawalService service.WithdrawalService
	AdminGateway      service.AdminGateway

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	util.InitLogger()
	app.Logger = util.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	if err := db.RunMigrations(app.DB, app.Config.MigrationsURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database migrations applied.")

	app.AccountRepository = postgres.NewAccountRepository(app.DB)
	app.PackageRepository = postgres.NewPackageRepository(app.DB)
	app.InvestmentRepository = postgres.NewInvestmentRepository(app.DB)
	app.WithdrawalRepository = postgres.NewWithdrawalRepository(app.DB)
	app.LedgerRepository = postgres.NewLedgerRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	app.Ledger = service.NewWalletLedger(
		app.DB,
		app.AccountRepository,
		app.LedgerRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.Referrals = service.NewReferralRegistry(app.DB, app.AccountRepository)
	app.AccountService = service.NewAccountService(
		app.DB, app.DB,
		app.AccountRepository,
		app.Referrals,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.InvestmentService = service.NewInvestmentService(
		app.DB, app.DB,
		app.AccountRepository,
		app.PackageRepository,
		app.InvestmentRepository,
		app.Ledger,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.WithdrawalService = service.NewWithdrawalService(
		app.DB, app.DB,
		app.WithdrawalRepository,
		app.Ledger,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.AdminGateway = service.NewAdminGateway(
		service.NewAllowListPolicy(app.Config.AdminIdentities),
		app.DB,
		app.AccountRepository,
		app.LedgerRepository,
		app.Ledger,
		app.WithdrawalService,
		app.InvestmentService,
	)
	app.Logger.Info("Services initialized.")

	memberHandler := handler.NewMemberHandler(app.AccountService, app.InvestmentService, app.WithdrawalService, app.Logger)
	adminHandler := handler.NewAdminHandler(app.AdminGateway, app.Logger)
	app.HTTPHandler = router.NewRouter(memberHandler, adminHandler, app.Logger)
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
