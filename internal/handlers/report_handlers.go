package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"cleanops_backend/internal/middleware"
	"cleanops_backend/internal/services"
	"cleanops_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// reportPeriod parses the from/to query params. Defaults to the current
// calendar month when both are absent.
func reportPeriod(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	if fromStr := c.Query("from"); fromStr != "" {
		t, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q, use YYYY-MM-DD", fromStr)
		}
		from = t
	}
	if toStr := c.Query("to"); toStr != "" {
		t, err := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q, use YYYY-MM-DD", toStr)
		}
		// "to" is inclusive in the query but the period end is exclusive.
		to = t.AddDate(0, 0, 1)
	}
	return from, to, nil
}

func respondReportError(c *gin.Context, err error, logContext string) {
	if errors.Is(err, services.ErrReportValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		return
	}
	utils.LogError(err, logContext)
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal error.", "Internal error"))
}

// GetPayrollSummary returns per-employee hours and gross pay for the period.
func (h *ReportHandler) GetPayrollSummary(c *gin.Context) {
	from, to, err := reportPeriod(c)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		return
	}

	lines, err := h.reportService.PayrollSummary(middleware.OwnerFromContext(c), from, to)
	if err != nil {
		respondReportError(c, err, "GetPayrollSummary: Error from reportService.PayrollSummary")
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "data": lines})
}

// GetProfitLoss returns per-account revenue versus labor cost for the period.
func (h *ReportHandler) GetProfitLoss(c *gin.Context) {
	from, to, err := reportPeriod(c)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		return
	}

	lines, err := h.reportService.ProfitLoss(middleware.OwnerFromContext(c), from, to)
	if err != nil {
		respondReportError(c, err, "GetProfitLoss: Error from reportService.ProfitLoss")
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "data": lines})
}

// ExportReport streams the payroll and P&L workbook as an XLSX download.
func (h *ReportHandler) ExportReport(c *gin.Context) {
	from, to, err := reportPeriod(c)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		return
	}

	workbook, err := h.reportService.ExportWorkbook(middleware.OwnerFromContext(c), from, to)
	if err != nil {
		respondReportError(c, err, "ExportReport: Error from reportService.ExportWorkbook")
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("report_%s_%s.xlsx", from.Format("2006-01-02"), to.AddDate(0, 0, -1).Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		utils.LogError(err, "ExportReport: failed to stream workbook")
	}
}
