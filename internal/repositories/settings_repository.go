package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cleanops_backend/internal/models"
)

// SettingsRepository defines per-tenant key/value settings persistence.
type SettingsRepository interface {
	GetSetting(owner, key string) (*models.TenantSetting, error)
	UpsertSetting(executor SQLExecutor, setting *models.TenantSetting) (*models.TenantSetting, error)
	DeleteSetting(executor SQLExecutor, owner, key string) error
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetSetting(owner, key string) (*models.TenantSetting, error) {
	query := `SELECT owner, setting_key, setting_value, updated_at
	          FROM tenant_settings WHERE owner = $1 AND setting_key = $2`

	var setting models.TenantSetting
	err := r.db.QueryRow(query, owner, key).Scan(
		&setting.Owner, &setting.Key, &setting.Value, &setting.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: reading setting %q: %v", ErrDatabaseError, key, err)
	}
	return &setting, nil
}

func (r *settingsRepository) UpsertSetting(executor SQLExecutor, setting *models.TenantSetting) (*models.TenantSetting, error) {
	query := `INSERT INTO tenant_settings (owner, setting_key, setting_value, updated_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (owner, setting_key)
	          DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = EXCLUDED.updated_at
	          RETURNING updated_at`
	setting.UpdatedAt = time.Now()

	err := executor.QueryRow(query, setting.Owner, setting.Key, setting.Value, setting.UpdatedAt).
		Scan(&setting.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: upserting setting %q: %v", ErrDatabaseError, setting.Key, err)
	}
	return setting, nil
}

func (r *settingsRepository) DeleteSetting(executor SQLExecutor, owner, key string) error {
	result, err := executor.Exec(`DELETE FROM tenant_settings WHERE owner = $1 AND setting_key = $2`, owner, key)
	if err != nil {
		return fmt.Errorf("%w: deleting setting %q: %v", ErrDatabaseError, key, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
