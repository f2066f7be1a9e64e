package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cleanops_backend/internal/middleware"
	"cleanops_backend/internal/services"
	"cleanops_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler holds the employee service.
type EmployeeHandler struct {
	employeeService services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(es services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: es}
}

func respondEmployeeError(c *gin.Context, err error, logContext string) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", err.Error()))
	case errors.Is(err, services.ErrEmployeeDataValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
	case errors.Is(err, services.ErrEmployeeInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), err.Error()))
	default:
		utils.LogError(err, logContext)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal error.", "Internal error"))
	}
}

// CreateEmployee handles the creation of a new employee.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req services.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	employee, err := h.employeeService.CreateEmployee(middleware.OwnerFromContext(c), req)
	if err != nil {
		respondEmployeeError(c, err, "CreateEmployee: Error from employeeService.CreateEmployee")
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// GetEmployees handles fetching employees with pagination and search.
func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	var searchTerm *string
	if search := c.Query("search"); search != "" {
		searchTerm = &search
	}

	employees, totalCount, err := h.employeeService.GetEmployees(middleware.OwnerFromContext(c), page, pageSize, searchTerm)
	if err != nil {
		respondEmployeeError(c, err, "GetEmployees: Error from employeeService.GetEmployees")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      employees,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetEmployeeByID handles fetching a single employee.
func (h *EmployeeHandler) GetEmployeeByID(c *gin.Context) {
	employeeID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid employee ID format.", err.Error()))
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(middleware.OwnerFromContext(c), employeeID)
	if err != nil {
		respondEmployeeError(c, err, "GetEmployeeByID: Error from employeeService.GetEmployeeByID")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// UpdateEmployee handles partial updates to an employee.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	employeeID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid employee ID format.", err.Error()))
		return
	}

	var req services.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	employee, err := h.employeeService.UpdateEmployee(middleware.OwnerFromContext(c), employeeID, req)
	if err != nil {
		respondEmployeeError(c, err, "UpdateEmployee: Error from employeeService.UpdateEmployee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee handles employee deletion.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	employeeID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid employee ID format.", err.Error()))
		return
	}

	if err := h.employeeService.DeleteEmployee(middleware.OwnerFromContext(c), employeeID); err != nil {
		respondEmployeeError(c, err, "DeleteEmployee: Error from employeeService.DeleteEmployee")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
