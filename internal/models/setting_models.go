package models

import "time"

// TenantSetting is a per-tenant key/value configuration row.
type TenantSetting struct {
	Owner     string    `json:"owner" db:"owner"`
	Key       string    `json:"key" db:"setting_key"`
	Value     string    `json:"value" db:"setting_value"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Known setting keys.
const (
	SettingAlertThreshold = "alertThreshold" // minutes before a Scheduled shift shows as Late
)

// DefaultAlertThresholdMinutes applies when the tenant has no stored value
// or the settings read fails.
const DefaultAlertThresholdMinutes = 15
