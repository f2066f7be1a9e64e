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

// AccountHandler holds the account service.
type AccountHandler struct {
	accountService services.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(as services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: as}
}

func respondAccountError(c *gin.Context, err error, logContext string) {
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Account not found.", err.Error()))
	case errors.Is(err, services.ErrAccountDataValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
	case errors.Is(err, services.ErrAccountInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), err.Error()))
	default:
		utils.LogError(err, logContext)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal error.", "Internal error"))
	}
}

// CreateAccount handles the creation of a new client account.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req services.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(middleware.OwnerFromContext(c), req)
	if err != nil {
		respondAccountError(c, err, "CreateAccount: Error from accountService.CreateAccount")
		return
	}
	c.JSON(http.StatusCreated, account)
}

// GetAccounts handles fetching accounts with pagination and search.
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	var searchTerm *string
	if search := c.Query("search"); search != "" {
		searchTerm = &search
	}

	accounts, totalCount, err := h.accountService.GetAccounts(middleware.OwnerFromContext(c), page, pageSize, searchTerm)
	if err != nil {
		respondAccountError(c, err, "GetAccounts: Error from accountService.GetAccounts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      accounts,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetAccountByID handles fetching a single account.
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	accountID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid account ID format.", err.Error()))
		return
	}

	account, err := h.accountService.GetAccountByID(middleware.OwnerFromContext(c), accountID)
	if err != nil {
		respondAccountError(c, err, "GetAccountByID: Error from accountService.GetAccountByID")
		return
	}
	c.JSON(http.StatusOK, account)
}

// UpdateAccount handles partial updates, including pinning or clearing the
// site coordinates used by the geofence.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	accountID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid account ID format.", err.Error()))
		return
	}

	var req services.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(middleware.OwnerFromContext(c), accountID, req)
	if err != nil {
		respondAccountError(c, err, "UpdateAccount: Error from accountService.UpdateAccount")
		return
	}
	c.JSON(http.StatusOK, account)
}

// DeleteAccount handles account deletion.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid account ID format.", err.Error()))
		return
	}

	if err := h.accountService.DeleteAccount(middleware.OwnerFromContext(c), accountID); err != nil {
		respondAccountError(c, err, "DeleteAccount: Error from accountService.DeleteAccount")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
