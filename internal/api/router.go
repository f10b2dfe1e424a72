package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/fintrackhq/fintrack-api/docs"
	"github.com/fintrackhq/fintrack-api/internal/api/handler"
	"github.com/fintrackhq/fintrack-api/internal/api/middleware"
	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/service"
	mongodb "github.com/fintrackhq/fintrack-api/internal/infrastructure/db/mongo"
	redisdb "github.com/fintrackhq/fintrack-api/internal/infrastructure/db/redis"
	"github.com/fintrackhq/fintrack-api/internal/pkg/config"
	"github.com/fintrackhq/fintrack-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("fintrack"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	catalogRepo := mongodb.NewCatalogRepository(db)
	orgRepo := mongodb.NewOrganizationRepository(db)
	bankAccountRepo := mongodb.NewBankAccountRepository(db)
	budgetRepo := mongodb.NewBudgetRepository(db)
	expenseRepo := mongodb.NewExpenseRepository(db)
	incomeRepo := mongodb.NewIncomeRepository(db)
	transactionRepo := mongodb.NewTransactionRepository(db)
	reportRepo := mongodb.NewReportRepository(db)

	codes := redisdb.NewVerificationStore(rdb)

	issuer := service.NewSessionIssuer(cfg.JWTSecret, cfg.SessionTTL)
	authService := service.NewAuthService(accountRepo, codes, log)
	catalogService := service.NewCatalogService(catalogRepo, log)
	orgService := service.NewOrganizationService(orgRepo, log)
	bankAccountService := service.NewBankAccountService(bankAccountRepo, log)
	budgetService := service.NewBudgetService(budgetRepo, log)
	expenseService := service.NewExpenseService(expenseRepo, log)
	incomeService := service.NewIncomeService(incomeRepo, log)
	transactionService := service.NewTransactionService(transactionRepo, log)
	reportService := service.NewReportService(reportRepo, log)

	authHandler := handler.NewAuthHandler(authService, issuer)
	reportHandler := handler.NewReportHandler(reportService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// --- Perimeter gate: every request passes through it once ---
	e.Use(middleware.Gate(issuer))

	// --- Ops surface (allow-listed) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Auth routes (allow-listed; Me/password/account rely on the gate) ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/signin", authHandler.SignIn)
	auth.POST("/signout", authHandler.SignOut)
	auth.POST("/verify", authHandler.VerifyEmail)
	auth.POST("/password", authHandler.ChangePassword)
	auth.DELETE("/account", authHandler.DeleteAccount)
	auth.GET("/me", authHandler.Me)

	// --- Protected resources ---
	v1 := e.Group("/api/v1")

	handler.NewCatalogHandler(catalogService, domain.KindTag).Register(v1.Group("/tags"))
	handler.NewCatalogHandler(catalogService, domain.KindPaymentMethod).Register(v1.Group("/payment-methods"))
	handler.NewCatalogHandler(catalogService, domain.KindExpenseCategory).Register(v1.Group("/expense-categories"))
	handler.NewCatalogHandler(catalogService, domain.KindIncomeSource).Register(v1.Group("/income-sources"))

	handler.NewOrganizationHandler(orgService).Register(v1.Group("/organizations"))
	handler.NewBankAccountHandler(bankAccountService).Register(v1.Group("/bank-accounts"))
	handler.NewBudgetHandler(budgetService).Register(v1.Group("/budgets"))
	handler.NewExpenseHandler(expenseService).Register(v1.Group("/expenses"))
	handler.NewIncomeHandler(incomeService).Register(v1.Group("/incomes"))
	handler.NewTransactionHandler(transactionService).Register(v1.Group("/transactions"))

	reportHandler.Register(v1.Group("/reports"))

	// The landing page the gate redirects signed-in users to.
	e.GET("/dashboard", reportHandler.Dashboard)

	return e
}
