package services

import (
	"errors"
	"fmt"
	"time"

	"cleanops_backend/internal/models"
	"cleanops_backend/internal/repositories"

	"github.com/xuri/excelize/v2"
)

var ErrReportValidation = errors.New("report validation error")

// PayrollLine aggregates one employee's worked time over a reporting period.
// Only completed shifts with both actual stamps count toward hours.
type PayrollLine struct {
	EmployeeID   int64    `json:"employeeId"`
	EmployeeName string   `json:"employeeName"`
	ShiftCount   int      `json:"shiftCount"`
	HoursWorked  float64  `json:"hoursWorked"`
	HourlyRate   *float64 `json:"hourlyRate,omitempty"`
	GrossPay     *float64 `json:"grossPay,omitempty"`
}

// ProfitLossLine compares an account's monthly billing against the labor
// cost of shifts worked there in the period.
type ProfitLossLine struct {
	AccountID   int64    `json:"accountId"`
	AccountName string   `json:"accountName"`
	Revenue     *float64 `json:"revenue,omitempty"`
	LaborCost   float64  `json:"laborCost"`
	Margin      *float64 `json:"margin,omitempty"`
}

// --- ReportService Interface ---
type ReportService interface {
	PayrollSummary(owner string, from, to time.Time) ([]PayrollLine, error)
	ProfitLoss(owner string, from, to time.Time) ([]ProfitLossLine, error)
	ExportWorkbook(owner string, from, to time.Time) (*excelize.File, error)
}

type reportService struct {
	shiftRepo    repositories.ShiftRepository
	accountRepo  repositories.AccountRepository
	employeeRepo repositories.EmployeeRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	sr repositories.ShiftRepository,
	ar repositories.AccountRepository,
	er repositories.EmployeeRepository,
) ReportService {
	return &reportService{shiftRepo: sr, accountRepo: ar, employeeRepo: er}
}

// completedShiftsIn returns the owner's completed shifts whose actual work
// falls inside [from, to).
func (s *reportService) completedShiftsIn(owner string, from, to time.Time) ([]models.Shift, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: period end must be after period start", ErrReportValidation)
	}

	shifts, _, err := s.shiftRepo.GetShifts(owner, models.ShiftFilters{EndTimeAfter: &from})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts for report: %w", err)
	}

	worked := []models.Shift{}
	for _, shift := range shifts {
		if shift.Status != models.ShiftCompleted || shift.ActualStartTime == nil || shift.ActualEndTime == nil {
			continue
		}
		if shift.ActualStartTime.Before(to) && shift.ActualEndTime.After(from) {
			worked = append(worked, shift)
		}
	}
	return worked, nil
}

func (s *reportService) PayrollSummary(owner string, from, to time.Time) ([]PayrollLine, error) {
	worked, err := s.completedShiftsIn(owner, from, to)
	if err != nil {
		return nil, err
	}

	employees, _, err := s.employeeRepo.GetEmployees(owner, 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees for payroll: %w", err)
	}
	rates := make(map[int64]*float64, len(employees))
	for i := range employees {
		rates[employees[i].ID] = employees[i].HourlyRate
	}

	byEmployee := map[int64]*PayrollLine{}
	order := []int64{}
	for _, shift := range worked {
		line, ok := byEmployee[shift.EmployeeID]
		if !ok {
			line = &PayrollLine{
				EmployeeID:   shift.EmployeeID,
				EmployeeName: shift.EmployeeName,
				HourlyRate:   rates[shift.EmployeeID],
			}
			byEmployee[shift.EmployeeID] = line
			order = append(order, shift.EmployeeID)
		}
		line.ShiftCount++
		line.HoursWorked += shift.ActualEndTime.Sub(*shift.ActualStartTime).Hours()
	}

	lines := make([]PayrollLine, 0, len(order))
	for _, id := range order {
		line := byEmployee[id]
		if line.HourlyRate != nil {
			gross := line.HoursWorked * *line.HourlyRate
			line.GrossPay = &gross
		}
		lines = append(lines, *line)
	}
	return lines, nil
}

func (s *reportService) ProfitLoss(owner string, from, to time.Time) ([]ProfitLossLine, error) {
	worked, err := s.completedShiftsIn(owner, from, to)
	if err != nil {
		return nil, err
	}

	employees, _, err := s.employeeRepo.GetEmployees(owner, 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees for P&L: %w", err)
	}
	rates := make(map[int64]*float64, len(employees))
	for i := range employees {
		rates[employees[i].ID] = employees[i].HourlyRate
	}

	accounts, _, err := s.accountRepo.GetAccounts(owner, 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for P&L: %w", err)
	}
	billing := make(map[int64]*float64, len(accounts))
	for i := range accounts {
		billing[accounts[i].ID] = accounts[i].MonthlyBilling
	}

	byAccount := map[int64]*ProfitLossLine{}
	order := []int64{}
	for _, shift := range worked {
		line, ok := byAccount[shift.AccountID]
		if !ok {
			line = &ProfitLossLine{
				AccountID:   shift.AccountID,
				AccountName: shift.AccountName,
				Revenue:     billing[shift.AccountID],
			}
			byAccount[shift.AccountID] = line
			order = append(order, shift.AccountID)
		}
		if rate := rates[shift.EmployeeID]; rate != nil {
			line.LaborCost += shift.ActualEndTime.Sub(*shift.ActualStartTime).Hours() * *rate
		}
	}

	lines := make([]ProfitLossLine, 0, len(order))
	for _, id := range order {
		line := byAccount[id]
		if line.Revenue != nil {
			margin := *line.Revenue - line.LaborCost
			line.Margin = &margin
		}
		lines = append(lines, *line)
	}
	return lines, nil
}

// ExportWorkbook renders the payroll and P&L summaries as a two-sheet XLSX
// workbook for download.
func (s *reportService) ExportWorkbook(owner string, from, to time.Time) (*excelize.File, error) {
	payroll, err := s.PayrollSummary(owner, from, to)
	if err != nil {
		return nil, err
	}
	pnl, err := s.ProfitLoss(owner, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	payrollSheet := "Payroll"
	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	headers := []interface{}{"Employee", "Shifts", "Hours", "Hourly Rate", "Gross Pay"}
	if err := f.SetSheetRow(payrollSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	for i, line := range payroll {
		row := []interface{}{line.EmployeeName, line.ShiftCount, line.HoursWorked}
		if line.HourlyRate != nil {
			row = append(row, *line.HourlyRate)
		} else {
			row = append(row, "")
		}
		if line.GrossPay != nil {
			row = append(row, *line.GrossPay)
		} else {
			row = append(row, "")
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(payrollSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to build workbook: %w", err)
		}
	}

	pnlSheet := "Profit & Loss"
	if _, err := f.NewSheet(pnlSheet); err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	pnlHeaders := []interface{}{"Account", "Revenue", "Labor Cost", "Margin"}
	if err := f.SetSheetRow(pnlSheet, "A1", &pnlHeaders); err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	for i, line := range pnl {
		row := []interface{}{line.AccountName}
		if line.Revenue != nil {
			row = append(row, *line.Revenue)
		} else {
			row = append(row, "")
		}
		row = append(row, line.LaborCost)
		if line.Margin != nil {
			row = append(row, *line.Margin)
		} else {
			row = append(row, "")
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(pnlSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to build workbook: %w", err)
		}
	}

	return f, nil
}
