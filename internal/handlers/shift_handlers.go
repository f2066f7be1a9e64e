package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cleanops_backend/internal/middleware"
	"cleanops_backend/internal/models"
	"cleanops_backend/internal/services"
	"cleanops_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ShiftHandler holds the shift service.
type ShiftHandler struct {
	shiftService services.ShiftService
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(ss services.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: ss}
}

// ClockRequest carries the device fix posted with a clock-in or clock-out.
// Position is optional: a missing fix is a geolocation failure unless the
// site has no registered pin.
type ClockRequest struct {
	Position  *services.Position `json:"position"`
	Confirmed bool               `json:"confirmed"`
}

func (r *ClockRequest) provider() services.PositionProvider {
	if r.Position == nil {
		return nil
	}
	return services.StaticPosition(*r.Position)
}

// respondShiftError maps scheduling service errors onto the API envelope.
func respondShiftError(c *gin.Context, err error, logContext string) {
	var conflictErr *services.ShiftConflictError
	var rangeErr *services.OutOfRangeError

	switch {
	case errors.Is(err, services.ErrShiftNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found.", err.Error()))
	case errors.As(err, &conflictErr):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, conflictErr.Error(), conflictErr.Error()))
	case errors.As(err, &rangeErr):
		apiErr := utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeOutOfRange, rangeErr.Error(), rangeErr.Error())
		c.JSON(apiErr.StatusCode, gin.H{
			"error":          apiErr,
			"distanceMeters": rangeErr.DistanceM,
			"radiusMeters":   rangeErr.RadiusM,
		})
		c.Abort()
	case errors.Is(err, services.ErrGeolocation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeGeolocationFailed, "Could not determine device position.", err.Error()))
	case errors.Is(err, services.ErrShiftNotStarted), errors.Is(err, services.ErrCheckOutNotConfirmed),
		errors.Is(err, services.ErrShiftValidation), errors.Is(err, services.ErrShiftTimeFormat):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
	case errors.Is(err, services.ErrAccountForShiftNotFound), errors.Is(err, services.ErrEmployeeForShiftNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), err.Error()))
	default:
		utils.LogError(err, logContext)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal error.", "Internal error"))
	}
}

// CreateShift handles the creation of a new shift.
func (h *ShiftHandler) CreateShift(c *gin.Context) {
	var req services.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	shift, err := h.shiftService.CreateShift(middleware.OwnerFromContext(c), req)
	if err != nil {
		respondShiftError(c, err, "CreateShift: Error from shiftService.CreateShift")
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// GetShifts handles fetching shifts with pagination and filters.
func (h *ShiftHandler) GetShifts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	filters := models.ShiftFilters{Page: page, PageSize: pageSize}

	if employeeIDStr := c.Query("employee_id"); employeeIDStr != "" {
		id, err := utils.StrToInt64(employeeIDStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid employee_id format.", err.Error()))
			return
		}
		filters.EmployeeID = &id
	}
	if accountIDStr := c.Query("account_id"); accountIDStr != "" {
		id, err := utils.StrToInt64(accountIDStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid account_id format.", err.Error()))
			return
		}
		filters.AccountID = &id
	}
	if endAfterStr := c.Query("end_after"); endAfterStr != "" {
		t, err := time.Parse(time.RFC3339, endAfterStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid end_after format. Use RFC3339.", err.Error()))
			return
		}
		filters.EndTimeAfter = &t
	}

	shifts, totalCount, err := h.shiftService.GetShifts(middleware.OwnerFromContext(c), filters)
	if err != nil {
		respondShiftError(c, err, "GetShifts: Error from shiftService.GetShifts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      shifts,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetShiftByID handles fetching a single shift.
func (h *ShiftHandler) GetShiftByID(c *gin.Context) {
	shiftID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid shift ID format.", err.Error()))
		return
	}

	shift, err := h.shiftService.GetShiftByID(middleware.OwnerFromContext(c), shiftID)
	if err != nil {
		respondShiftError(c, err, "GetShiftByID: Error from shiftService.GetShiftByID")
		return
	}
	c.JSON(http.StatusOK, shift)
}

// UpdateShift handles the manual-edit path: any field may be set.
func (h *ShiftHandler) UpdateShift(c *gin.Context) {
	shiftID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid shift ID format.", err.Error()))
		return
	}

	var req services.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	shift, err := h.shiftService.UpdateShift(middleware.OwnerFromContext(c), shiftID, req)
	if err != nil {
		respondShiftError(c, err, "UpdateShift: Error from shiftService.UpdateShift")
		return
	}
	c.JSON(http.StatusOK, shift)
}

// DeleteShift handles shift cancellation.
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	shiftID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid shift ID format.", err.Error()))
		return
	}

	if err := h.shiftService.DeleteShift(middleware.OwnerFromContext(c), shiftID); err != nil {
		respondShiftError(c, err, "DeleteShift: Error from shiftService.DeleteShift")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift cancelled successfully"})
}

// ClockIn handles a geofenced clock-in.
func (h *ShiftHandler) ClockIn(c *gin.Context) {
	shiftID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid shift ID format.", err.Error()))
		return
	}

	var req ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.shiftService.ClockIn(c.Request.Context(), middleware.OwnerFromContext(c), shiftID, req.provider())
	if err != nil {
		respondShiftError(c, err, "ClockIn: Error from shiftService.ClockIn")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ClockOut handles a geofenced clock-out. The request must carry an explicit
// confirmation since completing a shift is irreversible for the day.
func (h *ShiftHandler) ClockOut(c *gin.Context) {
	shiftID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid shift ID format.", err.Error()))
		return
	}

	var req ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.shiftService.ClockOut(c.Request.Context(), middleware.OwnerFromContext(c), shiftID, req.Confirmed, req.provider())
	if err != nil {
		respondShiftError(c, err, "ClockOut: Error from shiftService.ClockOut")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetWeekSchedule renders the week view for the week containing the anchor
// date (defaults to today).
func (h *ShiftHandler) GetWeekSchedule(c *gin.Context) {
	anchor := time.Now()
	if anchorStr := c.Query("week"); anchorStr != "" {
		t, err := time.ParseInLocation("2006-01-02", anchorStr, time.Local)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid week format. Use YYYY-MM-DD.", err.Error()))
			return
		}
		anchor = t
	}

	week, err := h.shiftService.WeekSchedule(c.Request.Context(), middleware.OwnerFromContext(c), anchor)
	if err != nil {
		respondShiftError(c, err, "GetWeekSchedule: Error from shiftService.WeekSchedule")
		return
	}
	c.JSON(http.StatusOK, week)
}
