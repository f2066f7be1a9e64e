package models

import "time"

// Tenant is the business account that partitions all data. Its ID is the
// "owner" value carried on every other record.
type Tenant struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"companyName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// User represents a dashboard login belonging to a tenant.
type User struct {
	ID           int64     `json:"id"`
	Owner        string    `json:"owner" db:"owner"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     *string   `json:"fullName,omitempty" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
)
