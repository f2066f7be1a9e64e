package models

import "time"

// Employee represents a worker who can be assigned shifts. HourlyRate feeds
// payroll aggregation; scheduling itself only needs identity.
type Employee struct {
	ID          int64     `json:"id"`
	Owner       string    `json:"owner" db:"owner"`
	FullName    string    `json:"fullName" db:"full_name"`
	PhoneNumber *string   `json:"phoneNumber,omitempty" db:"phone_number"`
	Email       *string   `json:"email,omitempty" db:"email"`
	HourlyRate  *float64  `json:"hourlyRate,omitempty" db:"hourly_rate"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
