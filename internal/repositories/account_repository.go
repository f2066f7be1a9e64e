package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cleanops_backend/internal/models"
)

// AccountRepository defines client-site persistence.
type AccountRepository interface {
	CreateAccount(executor SQLExecutor, account *models.Account) (*models.Account, error)
	GetAccountByID(owner string, id int64) (*models.Account, error)
	GetAccounts(owner string, page, pageSize int, searchTerm *string) ([]models.Account, int, error)
	UpdateAccount(executor SQLExecutor, account *models.Account) (*models.Account, error)
	DeleteAccount(executor SQLExecutor, owner string, id int64) error
}

type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

const selectAccountFields = `
	id, owner, name, address, lat, lng, geofence_radius_m, monthly_billing,
	created_at, updated_at
`

func scanAccountRow(row scanner, withTotal bool) (*models.Account, int, error) {
	var account models.Account
	var address sql.NullString
	var lat, lng, billing sql.NullFloat64
	var totalCount int

	dest := []interface{}{
		&account.ID, &account.Owner, &account.Name, &address,
		&lat, &lng, &account.GeofenceRadius, &billing,
		&account.CreatedAt, &account.UpdatedAt,
	}
	if withTotal {
		dest = append(dest, &totalCount)
	}

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning account: %v", ErrDatabaseError, err)
	}

	if address.Valid {
		account.Address = &address.String
	}
	if lat.Valid {
		account.Lat = &lat.Float64
	}
	if lng.Valid {
		account.Lng = &lng.Float64
	}
	if billing.Valid {
		account.MonthlyBilling = &billing.Float64
	}
	return &account, totalCount, nil
}

func (r *accountRepository) CreateAccount(executor SQLExecutor, account *models.Account) (*models.Account, error) {
	query := `INSERT INTO accounts
	            (owner, name, address, lat, lng, geofence_radius_m, monthly_billing, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at, updated_at`

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	err := executor.QueryRow(query,
		account.Owner, account.Name, account.Address, account.Lat, account.Lng,
		account.GeofenceRadius, account.MonthlyBilling, account.CreatedAt, account.UpdatedAt,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating account: %v", ErrDatabaseError, err)
	}
	return account, nil
}

func (r *accountRepository) GetAccountByID(owner string, id int64) (*models.Account, error) {
	query := "SELECT " + selectAccountFields + " FROM accounts WHERE owner = $1 AND id = $2"
	account, _, err := scanAccountRow(r.db.QueryRow(query, owner, id), false)
	return account, err
}

func (r *accountRepository) GetAccounts(owner string, page, pageSize int, searchTerm *string) ([]models.Account, int, error) {
	accounts := []models.Account{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectAccountFields + ", COUNT(*) OVER() AS total_count FROM accounts WHERE owner = $1")

	args := []interface{}{owner}
	argCount := 2

	if searchTerm != nil && strings.TrimSpace(*searchTerm) != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR address ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+strings.TrimSpace(*searchTerm)+"%")
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY name ASC")

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
		return nil, 0, fmt.Errorf("%w: querying accounts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		account, scannedTotal, scanErr := scanAccountRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		accounts = append(accounts, *account)
		totalCount = scannedTotal
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating account rows: %v", ErrDatabaseError, err)
	}
	if len(accounts) == 0 {
		totalCount = 0
	}
	return accounts, totalCount, nil
}

func (r *accountRepository) UpdateAccount(executor SQLExecutor, account *models.Account) (*models.Account, error) {
	query := `UPDATE accounts SET
	            name = $1, address = $2, lat = $3, lng = $4,
	            geofence_radius_m = $5, monthly_billing = $6, updated_at = $7
	          WHERE owner = $8 AND id = $9
	          RETURNING updated_at`
	account.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		account.Name, account.Address, account.Lat, account.Lng,
		account.GeofenceRadius, account.MonthlyBilling, account.UpdatedAt,
		account.Owner, account.ID,
	).Scan(&account.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating account ID %d: %v", ErrDatabaseError, account.ID, err)
	}
	return account, nil
}

func (r *accountRepository) DeleteAccount(executor SQLExecutor, owner string, id int64) error {
	query := `DELETE FROM accounts WHERE owner = $1 AND id = $2`
	result, err := executor.Exec(query, owner, id)
	if err != nil {
		return fmt.Errorf("%w: deleting account ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
