package router

import (
	"database/sql"

	"cleanops_backend/internal/handlers"
	"cleanops_backend/internal/middleware"
	"cleanops_backend/internal/repositories"
	"cleanops_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Setup initializes the routing for the application. cache may be nil when
// redis is not configured.
func Setup(engine *gin.Engine, db *sql.DB, cache *redis.Client) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	shiftRepo := repositories.NewShiftRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	accountService := services.NewAccountService(accountRepo, db)
	employeeService := services.NewEmployeeService(employeeRepo, db)
	settingsService := services.NewSettingsService(settingsRepo, cache, db)
	shiftService := services.NewShiftService(shiftRepo, accountRepo, employeeRepo, settingsService, db)
	reportService := services.NewReportService(shiftRepo, accountRepo, employeeRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	shiftHandler := handlers.NewShiftHandler(shiftService)
	settingHandler := handlers.NewSettingHandler(settingsService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAccountRoutes(authenticated, accountHandler)
		SetupEmployeeRoutes(authenticated, employeeHandler)
		SetupShiftRoutes(authenticated, shiftHandler)
		SetupSettingRoutes(authenticated, settingHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}
