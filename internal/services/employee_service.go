package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cleanops_backend/internal/models"
	"cleanops_backend/internal/repositories"
)

// --- Custom Service Errors for Employees ---
var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeDataValidation = errors.New("employee data validation error")
	ErrEmployeeInUse          = errors.New("employee cannot be deleted as they are referenced by shifts")
)

// --- Employee DTOs ---
type CreateEmployeeRequest struct {
	FullName    string   `json:"fullName" binding:"required"`
	PhoneNumber *string  `json:"phoneNumber"`
	Email       *string  `json:"email"`
	HourlyRate  *float64 `json:"hourlyRate"`
}

type UpdateEmployeeRequest struct {
	FullName    *string  `json:"fullName"`
	PhoneNumber *string  `json:"phoneNumber"`
	Email       *string  `json:"email"`
	HourlyRate  *float64 `json:"hourlyRate"`
	IsActive    *bool    `json:"isActive"`
}

// --- EmployeeService Interface ---
type EmployeeService interface {
	CreateEmployee(owner string, req CreateEmployeeRequest) (*models.Employee, error)
	GetEmployeeByID(owner string, employeeID int64) (*models.Employee, error)
	GetEmployees(owner string, page, pageSize int, searchTerm *string) ([]models.Employee, int, error)
	UpdateEmployee(owner string, employeeID int64, req UpdateEmployeeRequest) (*models.Employee, error)
	DeleteEmployee(owner string, employeeID int64) error
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
	db           *sql.DB
}

// NewEmployeeService creates a new instance of EmployeeService.
func NewEmployeeService(er repositories.EmployeeRepository, db *sql.DB) EmployeeService {
	return &employeeService{employeeRepo: er, db: db}
}

func (s *employeeService) CreateEmployee(owner string, req CreateEmployeeRequest) (*models.Employee, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: full name cannot be empty", ErrEmployeeDataValidation)
	}
	if req.HourlyRate != nil && *req.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrEmployeeDataValidation)
	}

	employee := &models.Employee{
		Owner:       owner,
		FullName:    strings.TrimSpace(req.FullName),
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		HourlyRate:  req.HourlyRate,
		IsActive:    true,
	}

	created, err := s.employeeRepo.CreateEmployee(s.db, employee)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee in repository: %w", err)
	}
	return created, nil
}

func (s *employeeService) GetEmployeeByID(owner string, employeeID int64) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetEmployeeByID(owner, employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return employee, nil
}

func (s *employeeService) GetEmployees(owner string, page, pageSize int, searchTerm *string) ([]models.Employee, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	employees, totalCount, err := s.employeeRepo.GetEmployees(owner, page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get employees: %w", err)
	}
	return employees, totalCount, nil
}

func (s *employeeService) UpdateEmployee(owner string, employeeID int64, req UpdateEmployeeRequest) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetEmployeeByID(owner, employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee for update: %w", err)
	}

	if req.FullName != nil {
		if strings.TrimSpace(*req.FullName) == "" {
			return nil, fmt.Errorf("%w: full name cannot be empty if provided", ErrEmployeeDataValidation)
		}
		employee.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.PhoneNumber != nil {
		employee.PhoneNumber = req.PhoneNumber
	}
	if req.Email != nil {
		employee.Email = req.Email
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrEmployeeDataValidation)
		}
		employee.HourlyRate = req.HourlyRate
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	updated, err := s.employeeRepo.UpdateEmployee(s.db, employee)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to update employee in repository: %w", err)
	}
	return updated, nil
}

func (s *employeeService) DeleteEmployee(owner string, employeeID int64) error {
	err := s.employeeRepo.DeleteEmployee(s.db, owner, employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		if strings.Contains(err.Error(), "violates foreign key constraint") {
			return ErrEmployeeInUse
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}
