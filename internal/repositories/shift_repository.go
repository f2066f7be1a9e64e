package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cleanops_backend/internal/models"
)

// ShiftRepository defines shift persistence. Every query is scoped to the
// tenant owner; the only server-side range filter is on end_time, which is
// what the conflict detector and week view build on.
type ShiftRepository interface {
	CreateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error)
	GetShiftByID(owner string, id int64) (*models.Shift, error)
	GetShifts(owner string, filters models.ShiftFilters) ([]models.Shift, int, error)
	GetShiftsEndingAfter(owner string, employeeID int64, after time.Time) ([]models.Shift, error)
	UpdateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error)
	UpdateShiftClock(executor SQLExecutor, owner string, id int64, status models.ShiftStatus, actualStart, actualEnd *time.Time) error
	DeleteShift(executor SQLExecutor, owner string, id int64) error
}

type shiftRepository struct {
	db *sql.DB
}

// NewShiftRepository creates a new instance of ShiftRepository.
func NewShiftRepository(db *sql.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

const selectShiftFields = `
	id, owner, account_id, account_name, employee_id, employee_name,
	start_time, end_time, status, actual_start_time, actual_end_time,
	created_at, updated_at
`

func scanShiftRow(row scanner, withTotal bool) (*models.Shift, int, error) {
	var shift models.Shift
	var actualStart, actualEnd sql.NullTime
	var totalCount int

	dest := []interface{}{
		&shift.ID, &shift.Owner, &shift.AccountID, &shift.AccountName,
		&shift.EmployeeID, &shift.EmployeeName,
		&shift.StartTime, &shift.EndTime, &shift.Status,
		&actualStart, &actualEnd,
		&shift.CreatedAt, &shift.UpdatedAt,
	}
	if withTotal {
		dest = append(dest, &totalCount)
	}

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning shift: %v", ErrDatabaseError, err)
	}

	if actualStart.Valid {
		shift.ActualStartTime = &actualStart.Time
	}
	if actualEnd.Valid {
		shift.ActualEndTime = &actualEnd.Time
	}
	return &shift, totalCount, nil
}

func (r *shiftRepository) CreateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	query := `INSERT INTO shifts
	            (owner, account_id, account_name, employee_id, employee_name,
	             start_time, end_time, status, actual_start_time, actual_end_time,
	             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id, created_at, updated_at`

	now := time.Now()
	shift.CreatedAt = now
	shift.UpdatedAt = now

	err := executor.QueryRow(query,
		shift.Owner, shift.AccountID, shift.AccountName, shift.EmployeeID, shift.EmployeeName,
		shift.StartTime, shift.EndTime, shift.Status, shift.ActualStartTime, shift.ActualEndTime,
		shift.CreatedAt, shift.UpdatedAt,
	).Scan(&shift.ID, &shift.CreatedAt, &shift.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating shift: %v", ErrDatabaseError, err)
	}
	return shift, nil
}

func (r *shiftRepository) GetShiftByID(owner string, id int64) (*models.Shift, error) {
	query := "SELECT " + selectShiftFields + " FROM shifts WHERE owner = $1 AND id = $2"
	shift, _, err := scanShiftRow(r.db.QueryRow(query, owner, id), false)
	return shift, err
}

func (r *shiftRepository) GetShifts(owner string, filters models.ShiftFilters) ([]models.Shift, int, error) {
	shifts := []models.Shift{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectShiftFields + ", COUNT(*) OVER() AS total_count FROM shifts")

	conditions := []string{"owner = $1"}
	args := []interface{}{owner}
	argCount := 2

	if filters.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argCount))
		args = append(args, *filters.EmployeeID)
		argCount++
	}
	if filters.AccountID != nil {
		conditions = append(conditions, fmt.Sprintf("account_id = $%d", argCount))
		args = append(args, *filters.AccountID)
		argCount++
	}
	if filters.EndTimeAfter != nil {
		conditions = append(conditions, fmt.Sprintf("end_time > $%d", argCount))
		args = append(args, *filters.EndTimeAfter)
		argCount++
	}

	queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	queryBuilder.WriteString(" ORDER BY start_time ASC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying shifts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		shift, scannedTotal, scanErr := scanShiftRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		shifts = append(shifts, *shift)
		totalCount = scannedTotal
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating shift rows: %v", ErrDatabaseError, err)
	}
	if len(shifts) == 0 {
		totalCount = 0
	}
	return shifts, totalCount, nil
}

// GetShiftsEndingAfter returns an employee's shifts whose end_time is after
// the given instant. Anything ending at or before it cannot overlap a window
// starting there, so this is the candidate set for conflict detection.
func (r *shiftRepository) GetShiftsEndingAfter(owner string, employeeID int64, after time.Time) ([]models.Shift, error) {
	query := "SELECT " + selectShiftFields + ` FROM shifts
	          WHERE owner = $1 AND employee_id = $2 AND end_time > $3
	          ORDER BY start_time ASC`

	rows, err := r.db.Query(query, owner, employeeID, after)
	if err != nil {
		return nil, fmt.Errorf("%w: querying shifts ending after %s: %v", ErrDatabaseError, after, err)
	}
	defer rows.Close()

	shifts := []models.Shift{}
	for rows.Next() {
		shift, _, scanErr := scanShiftRow(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		shifts = append(shifts, *shift)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating shift rows: %v", ErrDatabaseError, err)
	}
	return shifts, nil
}

func (r *shiftRepository) UpdateShift(executor SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	query := `UPDATE shifts SET
	            account_id = $1, account_name = $2, employee_id = $3, employee_name = $4,
	            start_time = $5, end_time = $6, status = $7,
	            actual_start_time = $8, actual_end_time = $9, updated_at = $10
	          WHERE owner = $11 AND id = $12
	          RETURNING updated_at`
	shift.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		shift.AccountID, shift.AccountName, shift.EmployeeID, shift.EmployeeName,
		shift.StartTime, shift.EndTime, shift.Status,
		shift.ActualStartTime, shift.ActualEndTime, shift.UpdatedAt,
		shift.Owner, shift.ID,
	).Scan(&shift.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating shift ID %d: %v", ErrDatabaseError, shift.ID, err)
	}
	return shift, nil
}

// UpdateShiftClock writes only the status and actual timestamps, the partial
// update used by clock-in and clock-out.
func (r *shiftRepository) UpdateShiftClock(executor SQLExecutor, owner string, id int64, status models.ShiftStatus, actualStart, actualEnd *time.Time) error {
	query := `UPDATE shifts SET
	            status = $1,
	            actual_start_time = COALESCE($2, actual_start_time),
	            actual_end_time = COALESCE($3, actual_end_time),
	            updated_at = $4
	          WHERE owner = $5 AND id = $6`

	result, err := executor.Exec(query, status, actualStart, actualEnd, time.Now(), owner, id)
	if err != nil {
		return fmt.Errorf("%w: updating shift clock for ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *shiftRepository) DeleteShift(executor SQLExecutor, owner string, id int64) error {
	query := `DELETE FROM shifts WHERE owner = $1 AND id = $2`
	result, err := executor.Exec(query, owner, id)
	if err != nil {
		return fmt.Errorf("%w: deleting shift ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
