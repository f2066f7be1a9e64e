package services

import (
	"strings"
	"testing"

	"cleanops_backend/internal/models"
	"cleanops_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthRepo struct {
	usersByEmail map[string]*models.User
	usersByID    map[int64]*models.User
	tenants      map[string]*models.Tenant
	nextUserID   int64
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		usersByEmail: map[string]*models.User{},
		usersByID:    map[int64]*models.User{},
		tenants:      map[string]*models.Tenant{},
		nextUserID:   1,
	}
}

func (r *fakeAuthRepo) CreateTenant(_ repositories.SQLExecutor, tenant *models.Tenant) error {
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeAuthRepo) CreateUser(_ repositories.SQLExecutor, user *models.User) (int64, error) {
	if _, exists := r.usersByEmail[user.Email]; exists {
		return 0, repositories.ErrDuplicateKey
	}
	user.ID = r.nextUserID
	r.nextUserID++
	r.usersByEmail[user.Email] = user
	r.usersByID[user.ID] = user
	return user.ID, nil
}

func (r *fakeAuthRepo) FindUserByEmail(email string) (*models.User, error) {
	user, ok := r.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *fakeAuthRepo) FindUserByID(userID int64) (*models.User, error) {
	user, ok := r.usersByID[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func newAuthFixture(t *testing.T) (*authService, *fakeAuthRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := newFakeAuthRepo()
	return &authService{authRepo: repo, db: db}, repo, mock
}

func (r *fakeAuthRepo) seedUser(t *testing.T, email, password string, active bool) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Owner:        "tenant-1",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
		IsActive:     active,
	}
	_, err = r.CreateUser(nil, user)
	require.NoError(t, err)
	return user
}

func TestRegisterTenant_CreatesTenantAndAdmin(t *testing.T) {
	svc, repo, mock := newAuthFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.RegisterTenant(RegisterTenantRequest{
		CompanyName: "Sparkle Cleaning Co",
		Email:       "Owner@Example.com",
		Password:    "password123",
		FullName:    "Dana Reyes",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
	assert.Equal(t, "owner@example.com", resp.User.Email)
	require.NotEmpty(t, resp.User.Owner)
	assert.Contains(t, repo.tenants, resp.User.Owner)
	assert.Equal(t, "Sparkle Cleaning Co", repo.tenants[resp.User.Owner].CompanyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterTenant_RejectsExistingEmail(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	repo.seedUser(t, "owner@example.com", "password123", true)

	_, err := svc.RegisterTenant(RegisterTenantRequest{
		CompanyName: "Another Co",
		Email:       "owner@example.com",
		Password:    "password123",
		FullName:    "Sam Okafor",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterTenant_RejectsShortPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.RegisterTenant(RegisterTenantRequest{
		CompanyName: "Sparkle Cleaning Co",
		Email:       "owner@example.com",
		Password:    "short",
		FullName:    "Dana Reyes",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_SuccessAndWrongPassword(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	repo.seedUser(t, "owner@example.com", "password123", true)

	resp, err := svc.Login(LoginRequest{Email: "owner@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(LoginRequest{Email: "owner@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_RejectsInactiveUser(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	repo.seedUser(t, "owner@example.com", "password123", false)

	_, err := svc.Login(LoginRequest{Email: "owner@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	repo.seedUser(t, "owner@example.com", "password123", true)

	login, err := svc.Login(LoginRequest{Email: "owner@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Empty(t, refreshed.RefreshToken) // refresh does not rotate the refresh token
}

func TestRefresh_RejectsGarbageToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Refresh(RefreshRequest{RefreshToken: "not-a-jwt"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
