package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cleanops_backend/internal/models"
)

// EmployeeRepository defines worker persistence.
type EmployeeRepository interface {
	CreateEmployee(executor SQLExecutor, employee *models.Employee) (*models.Employee, error)
	GetEmployeeByID(owner string, id int64) (*models.Employee, error)
	GetEmployees(owner string, page, pageSize int, searchTerm *string) ([]models.Employee, int, error)
	UpdateEmployee(executor SQLExecutor, employee *models.Employee) (*models.Employee, error)
	DeleteEmployee(executor SQLExecutor, owner string, id int64) error
}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const selectEmployeeFields = `
	id, owner, full_name, phone_number, email, hourly_rate, is_active,
	created_at, updated_at
`

func scanEmployeeRow(row scanner, withTotal bool) (*models.Employee, int, error) {
	var employee models.Employee
	var phone, email sql.NullString
	var rate sql.NullFloat64
	var totalCount int

	dest := []interface{}{
		&employee.ID, &employee.Owner, &employee.FullName, &phone, &email,
		&rate, &employee.IsActive, &employee.CreatedAt, &employee.UpdatedAt,
	}
	if withTotal {
		dest = append(dest, &totalCount)
	}

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning employee: %v", ErrDatabaseError, err)
	}

	if phone.Valid {
		employee.PhoneNumber = &phone.String
	}
	if email.Valid {
		employee.Email = &email.String
	}
	if rate.Valid {
		employee.HourlyRate = &rate.Float64
	}
	return &employee, totalCount, nil
}

func (r *employeeRepository) CreateEmployee(executor SQLExecutor, employee *models.Employee) (*models.Employee, error) {
	query := `INSERT INTO employees
	            (owner, full_name, phone_number, email, hourly_rate, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`

	now := time.Now()
	employee.CreatedAt = now
	employee.UpdatedAt = now

	err := executor.QueryRow(query,
		employee.Owner, employee.FullName, employee.PhoneNumber, employee.Email,
		employee.HourlyRate, employee.IsActive, employee.CreatedAt, employee.UpdatedAt,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating employee: %v", ErrDatabaseError, err)
	}
	return employee, nil
}

func (r *employeeRepository) GetEmployeeByID(owner string, id int64) (*models.Employee, error) {
	query := "SELECT " + selectEmployeeFields + " FROM employees WHERE owner = $1 AND id = $2"
	employee, _, err := scanEmployeeRow(r.db.QueryRow(query, owner, id), false)
	return employee, err
}

func (r *employeeRepository) GetEmployees(owner string, page, pageSize int, searchTerm *string) ([]models.Employee, int, error) {
	employees := []models.Employee{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectEmployeeFields + ", COUNT(*) OVER() AS total_count FROM employees WHERE owner = $1")

	args := []interface{}{owner}
	argCount := 2

	if searchTerm != nil && strings.TrimSpace(*searchTerm) != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND full_name ILIKE $%d", argCount))
		args = append(args, "%"+strings.TrimSpace(*searchTerm)+"%")
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY full_name ASC")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (page-1)*pageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying employees: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		employee, scannedTotal, scanErr := scanEmployeeRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		employees = append(employees, *employee)
		totalCount = scannedTotal
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating employee rows: %v", ErrDatabaseError, err)
	}
	if len(employees) == 0 {
		totalCount = 0
	}
	return employees, totalCount, nil
}

func (r *employeeRepository) UpdateEmployee(executor SQLExecutor, employee *models.Employee) (*models.Employee, error) {
	query := `UPDATE employees SET
	            full_name = $1, phone_number = $2, email = $3,
	            hourly_rate = $4, is_active = $5, updated_at = $6
	          WHERE owner = $7 AND id = $8
	          RETURNING updated_at`
	employee.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		employee.FullName, employee.PhoneNumber, employee.Email,
		employee.HourlyRate, employee.IsActive, employee.UpdatedAt,
		employee.Owner, employee.ID,
	).Scan(&employee.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating employee ID %d: %v", ErrDatabaseError, employee.ID, err)
	}
	return employee, nil
}

func (r *employeeRepository) DeleteEmployee(executor SQLExecutor, owner string, id int64) error {
	query := `DELETE FROM employees WHERE owner = $1 AND id = $2`
	result, err := executor.Exec(query, owner, id)
	if err != nil {
		if strings.Contains(err.Error(), "violates foreign key constraint") {
			return fmt.Errorf("%w: employee ID %d is referenced by shifts: %v", ErrDatabaseError, id, err)
		}
		return fmt.Errorf("%w: deleting employee ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
