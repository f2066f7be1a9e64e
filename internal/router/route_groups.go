package router

import (
	"cleanops_backend/internal/handlers"
	"cleanops_backend/internal/middleware"
	"cleanops_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.RegisterTenant)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh-token", authHandler.Refresh)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.GET("/me", authHandler.GetCurrentUser)
		}
	}
}

// SetupAccountRoutes sets up the client account routes.
func SetupAccountRoutes(authenticatedGroup *gin.RouterGroup, accountHandler *handlers.AccountHandler) {
	accountRoutes := authenticatedGroup.Group("/accounts")
	accountRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		accountRoutes.POST("", accountHandler.CreateAccount)
		accountRoutes.GET("", accountHandler.GetAccounts)
		accountRoutes.GET("/:id", accountHandler.GetAccountByID)
		accountRoutes.PATCH("/:id", accountHandler.UpdateAccount)
		accountRoutes.DELETE("/:id", accountHandler.DeleteAccount)
	}
}

// SetupEmployeeRoutes sets up the employee routes.
func SetupEmployeeRoutes(authenticatedGroup *gin.RouterGroup, employeeHandler *handlers.EmployeeHandler) {
	employeeRoutes := authenticatedGroup.Group("/employees")
	employeeRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		employeeRoutes.POST("", employeeHandler.CreateEmployee)
		employeeRoutes.GET("", employeeHandler.GetEmployees)
		employeeRoutes.GET("/:id", employeeHandler.GetEmployeeByID)
		employeeRoutes.PATCH("/:id", employeeHandler.UpdateEmployee)
		employeeRoutes.DELETE("/:id", employeeHandler.DeleteEmployee)
	}
}

// SetupShiftRoutes sets up the shift scheduling and time clock routes. The
// clock endpoints are open to employees; scheduling is admin-only.
func SetupShiftRoutes(authenticatedGroup *gin.RouterGroup, shiftHandler *handlers.ShiftHandler) {
	shiftRoutes := authenticatedGroup.Group("/shifts")
	{
		shiftRoutes.GET("", shiftHandler.GetShifts)
		shiftRoutes.GET("/week", shiftHandler.GetWeekSchedule)
		shiftRoutes.GET("/:id", shiftHandler.GetShiftByID)
		shiftRoutes.POST("/:id/clock-in", shiftHandler.ClockIn)
		shiftRoutes.POST("/:id/clock-out", shiftHandler.ClockOut)

		adminShiftRoutes := shiftRoutes.Group("")
		adminShiftRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminShiftRoutes.POST("", shiftHandler.CreateShift)
			adminShiftRoutes.PATCH("/:id", shiftHandler.UpdateShift)
			adminShiftRoutes.DELETE("/:id", shiftHandler.DeleteShift)
		}
	}
}

// SetupSettingRoutes sets up the tenant settings routes.
func SetupSettingRoutes(authenticatedGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	settingRoutes := authenticatedGroup.Group("/settings")
	settingRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		settingRoutes.GET("/:key", settingHandler.GetSetting)
		settingRoutes.PUT("/:key", settingHandler.UpdateSetting)
		settingRoutes.DELETE("/:key", settingHandler.DeleteSetting)
	}
}

// SetupReportRoutes sets up the payroll and P&L report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		reportRoutes.GET("/payroll", reportHandler.GetPayrollSummary)
		reportRoutes.GET("/profit-loss", reportHandler.GetProfitLoss)
		reportRoutes.GET("/export", reportHandler.ExportReport)
	}
}
