package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cleanops_backend/internal/models"
	"cleanops_backend/internal/repositories"
)

// --- Custom Service Errors for Accounts ---
var (
	ErrAccountNotFound       = errors.New("account not found")
	ErrAccountDataValidation = errors.New("account data validation error")
	ErrAccountInUse          = errors.New("account cannot be deleted as it is referenced by shifts")
)

// --- Account DTOs ---
type CreateAccountRequest struct {
	Name           string   `json:"name" binding:"required"`
	Address        *string  `json:"address"`
	Lat            *float64 `json:"lat"`
	Lng            *float64 `json:"lng"`
	GeofenceRadius *float64 `json:"geofenceRadius"`
	MonthlyBilling *float64 `json:"monthlyBilling"`
}

type UpdateAccountRequest struct {
	Name           *string  `json:"name"`
	Address        *string  `json:"address"`
	Lat            *float64 `json:"lat"`
	Lng            *float64 `json:"lng"`
	GeofenceRadius *float64 `json:"geofenceRadius"`
	MonthlyBilling *float64 `json:"monthlyBilling"`
	ClearPin       bool     `json:"clearPin"` // removes the registered coordinates
}

// --- AccountService Interface ---
type AccountService interface {
	CreateAccount(owner string, req CreateAccountRequest) (*models.Account, error)
	GetAccountByID(owner string, accountID int64) (*models.Account, error)
	GetAccounts(owner string, page, pageSize int, searchTerm *string) ([]models.Account, int, error)
	UpdateAccount(owner string, accountID int64, req UpdateAccountRequest) (*models.Account, error)
	DeleteAccount(owner string, accountID int64) error
}

type accountService struct {
	accountRepo repositories.AccountRepository
	db          *sql.DB
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(ar repositories.AccountRepository, db *sql.DB) AccountService {
	return &accountService{accountRepo: ar, db: db}
}

// clampRadius applies the default when unset and the 5m floor otherwise.
// Stored values are always usable directly by the geofence verifier.
func clampRadius(requested *float64) (float64, error) {
	if requested == nil {
		return models.DefaultGeofenceRadiusM, nil
	}
	if *requested <= 0 {
		return 0, fmt.Errorf("%w: geofence radius must be positive", ErrAccountDataValidation)
	}
	if *requested < models.MinGeofenceRadiusM {
		return models.MinGeofenceRadiusM, nil
	}
	return *requested, nil
}

func validateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return fmt.Errorf("%w: lat and lng must be provided together", ErrAccountDataValidation)
	}
	if lat != nil {
		if *lat < -90 || *lat > 90 {
			return fmt.Errorf("%w: lat must be between -90 and 90", ErrAccountDataValidation)
		}
		if *lng < -180 || *lng > 180 {
			return fmt.Errorf("%w: lng must be between -180 and 180", ErrAccountDataValidation)
		}
	}
	return nil
}

func (s *accountService) CreateAccount(owner string, req CreateAccountRequest) (*models.Account, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrAccountDataValidation)
	}
	if err := validateCoordinates(req.Lat, req.Lng); err != nil {
		return nil, err
	}
	radius, err := clampRadius(req.GeofenceRadius)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Owner:          owner,
		Name:           strings.TrimSpace(req.Name),
		Address:        req.Address,
		Lat:            req.Lat,
		Lng:            req.Lng,
		GeofenceRadius: radius,
		MonthlyBilling: req.MonthlyBilling,
	}

	created, err := s.accountRepo.CreateAccount(s.db, account)
	if err != nil {
		return nil, fmt.Errorf("failed to create account in repository: %w", err)
	}
	return created, nil
}

func (s *accountService) GetAccountByID(owner string, accountID int64) (*models.Account, error) {
	account, err := s.accountRepo.GetAccountByID(owner, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}
	return account, nil
}

func (s *accountService) GetAccounts(owner string, page, pageSize int, searchTerm *string) ([]models.Account, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	accounts, totalCount, err := s.accountRepo.GetAccounts(owner, page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get accounts: %w", err)
	}
	return accounts, totalCount, nil
}

func (s *accountService) UpdateAccount(owner string, accountID int64, req UpdateAccountRequest) (*models.Account, error) {
	account, err := s.accountRepo.GetAccountByID(owner, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty if provided", ErrAccountDataValidation)
		}
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		account.Address = req.Address
	}
	if req.ClearPin {
		account.Lat = nil
		account.Lng = nil
	} else if req.Lat != nil || req.Lng != nil {
		if err := validateCoordinates(req.Lat, req.Lng); err != nil {
			return nil, err
		}
		account.Lat = req.Lat
		account.Lng = req.Lng
	}
	if req.GeofenceRadius != nil {
		radius, radErr := clampRadius(req.GeofenceRadius)
		if radErr != nil {
			return nil, radErr
		}
		account.GeofenceRadius = radius
	}
	if req.MonthlyBilling != nil {
		account.MonthlyBilling = req.MonthlyBilling
	}

	updated, err := s.accountRepo.UpdateAccount(s.db, account)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to update account in repository: %w", err)
	}
	return updated, nil
}

func (s *accountService) DeleteAccount(owner string, accountID int64) error {
	err := s.accountRepo.DeleteAccount(s.db, owner, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAccountNotFound
		}
		if strings.Contains(err.Error(), "violates foreign key constraint") {
			return ErrAccountInUse
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
