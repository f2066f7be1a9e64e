package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cleanops_backend/internal/models"
)

// AuthRepository defines tenant and user persistence for authentication.
type AuthRepository interface {
	CreateTenant(executor SQLExecutor, tenant *models.Tenant) error
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(userID int64) (*models.User, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateTenant(executor SQLExecutor, tenant *models.Tenant) error {
	query := `INSERT INTO tenants (id, company_name, created_at, updated_at)
	          VALUES ($1, $2, $3, $4)`

	now := time.Now()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now

	if _, err := executor.Exec(query, tenant.ID, tenant.CompanyName, tenant.CreatedAt, tenant.UpdatedAt); err != nil {
		return fmt.Errorf("%w: creating tenant: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *authRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO users (owner, email, password_hash, full_name, role, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	var userID int64
	err := executor.QueryRow(query,
		user.Owner, user.Email, user.PasswordHash, user.FullName, user.Role,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	).Scan(&userID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return 0, ErrDuplicateKey
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	user.ID = userID
	return userID, nil
}

const selectUserFields = `
	id, owner, email, password_hash, full_name, role, is_active, created_at, updated_at
`

func scanUserRow(row scanner) (*models.User, error) {
	var user models.User
	var fullName sql.NullString

	err := row.Scan(
		&user.ID, &user.Owner, &user.Email, &user.PasswordHash, &fullName,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
	}
	if fullName.Valid {
		user.FullName = &fullName.String
	}
	return &user, nil
}

func (r *authRepository) FindUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE LOWER(email) = LOWER($1)"
	return scanUserRow(r.db.QueryRow(query, email))
}

func (r *authRepository) FindUserByID(userID int64) (*models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE id = $1"
	return scanUserRow(r.db.QueryRow(query, userID))
}
