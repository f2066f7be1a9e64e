package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"cleanops_backend/internal/models"
	"cleanops_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- In-memory fakes ---

type fakeShiftRepo struct {
	shifts map[int64]*models.Shift
	nextID int64
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: map[int64]*models.Shift{}, nextID: 1}
}

func (r *fakeShiftRepo) add(shift models.Shift) *models.Shift {
	shift.ID = r.nextID
	r.nextID++
	stored := shift
	r.shifts[stored.ID] = &stored
	return &stored
}

func (r *fakeShiftRepo) CreateShift(_ repositories.SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	created := r.add(*shift)
	out := *created
	return &out, nil
}

func (r *fakeShiftRepo) GetShiftByID(owner string, id int64) (*models.Shift, error) {
	shift, ok := r.shifts[id]
	if !ok || shift.Owner != owner {
		return nil, repositories.ErrNotFound
	}
	out := *shift
	return &out, nil
}

func (r *fakeShiftRepo) GetShifts(owner string, filters models.ShiftFilters) ([]models.Shift, int, error) {
	var out []models.Shift
	for _, shift := range r.shifts {
		if shift.Owner != owner {
			continue
		}
		if filters.EmployeeID != nil && shift.EmployeeID != *filters.EmployeeID {
			continue
		}
		if filters.AccountID != nil && shift.AccountID != *filters.AccountID {
			continue
		}
		if filters.EndTimeAfter != nil && !shift.EndTime.After(*filters.EndTimeAfter) {
			continue
		}
		out = append(out, *shift)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].StartTime.Before(out[b].StartTime) })
	return out, len(out), nil
}

func (r *fakeShiftRepo) GetShiftsEndingAfter(owner string, employeeID int64, after time.Time) ([]models.Shift, error) {
	shifts, _, err := r.GetShifts(owner, models.ShiftFilters{EmployeeID: &employeeID, EndTimeAfter: &after})
	return shifts, err
}

func (r *fakeShiftRepo) UpdateShift(_ repositories.SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	existing, ok := r.shifts[shift.ID]
	if !ok || existing.Owner != shift.Owner {
		return nil, repositories.ErrNotFound
	}
	stored := *shift
	r.shifts[shift.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeShiftRepo) UpdateShiftClock(_ repositories.SQLExecutor, owner string, id int64, status models.ShiftStatus, actualStart, actualEnd *time.Time) error {
	shift, ok := r.shifts[id]
	if !ok || shift.Owner != owner {
		return repositories.ErrNotFound
	}
	shift.Status = status
	if actualStart != nil {
		shift.ActualStartTime = actualStart
	}
	if actualEnd != nil {
		shift.ActualEndTime = actualEnd
	}
	return nil
}

func (r *fakeShiftRepo) DeleteShift(_ repositories.SQLExecutor, owner string, id int64) error {
	shift, ok := r.shifts[id]
	if !ok || shift.Owner != owner {
		return repositories.ErrNotFound
	}
	delete(r.shifts, id)
	return nil
}

type fakeAccountRepo struct {
	accounts map[int64]*models.Account
}

func (r *fakeAccountRepo) CreateAccount(_ repositories.SQLExecutor, account *models.Account) (*models.Account, error) {
	r.accounts[account.ID] = account
	return account, nil
}

func (r *fakeAccountRepo) GetAccountByID(owner string, id int64) (*models.Account, error) {
	account, ok := r.accounts[id]
	if !ok || account.Owner != owner {
		return nil, repositories.ErrNotFound
	}
	return account, nil
}

func (r *fakeAccountRepo) GetAccounts(owner string, page, pageSize int, searchTerm *string) ([]models.Account, int, error) {
	var out []models.Account
	for _, account := range r.accounts {
		if account.Owner == owner {
			out = append(out, *account)
		}
	}
	return out, len(out), nil
}

func (r *fakeAccountRepo) UpdateAccount(_ repositories.SQLExecutor, account *models.Account) (*models.Account, error) {
	r.accounts[account.ID] = account
	return account, nil
}

func (r *fakeAccountRepo) DeleteAccount(_ repositories.SQLExecutor, owner string, id int64) error {
	delete(r.accounts, id)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[int64]*models.Employee
}

func (r *fakeEmployeeRepo) CreateEmployee(_ repositories.SQLExecutor, employee *models.Employee) (*models.Employee, error) {
	r.employees[employee.ID] = employee
	return employee, nil
}

func (r *fakeEmployeeRepo) GetEmployeeByID(owner string, id int64) (*models.Employee, error) {
	employee, ok := r.employees[id]
	if !ok || employee.Owner != owner {
		return nil, repositories.ErrNotFound
	}
	return employee, nil
}

func (r *fakeEmployeeRepo) GetEmployees(owner string, page, pageSize int, searchTerm *string) ([]models.Employee, int, error) {
	var out []models.Employee
	for _, employee := range r.employees {
		if employee.Owner == owner {
			out = append(out, *employee)
		}
	}
	return out, len(out), nil
}

func (r *fakeEmployeeRepo) UpdateEmployee(_ repositories.SQLExecutor, employee *models.Employee) (*models.Employee, error) {
	r.employees[employee.ID] = employee
	return employee, nil
}

func (r *fakeEmployeeRepo) DeleteEmployee(_ repositories.SQLExecutor, owner string, id int64) error {
	delete(r.employees, id)
	return nil
}

type fakeSettings struct {
	threshold time.Duration
}

func (s *fakeSettings) AlertThreshold(ctx context.Context, owner string) time.Duration {
	if s.threshold == 0 {
		return time.Duration(models.DefaultAlertThresholdMinutes) * time.Minute
	}
	return s.threshold
}

func (s *fakeSettings) GetSetting(owner, key string) (*models.TenantSetting, error) {
	return nil, ErrSettingNotFound
}

func (s *fakeSettings) UpdateSetting(ctx context.Context, owner, key, value string) (*models.TenantSetting, error) {
	return &models.TenantSetting{Owner: owner, Key: key, Value: value}, nil
}

func (s *fakeSettings) DeleteSetting(ctx context.Context, owner, key string) error {
	return nil
}

// --- Fixture ---

const testOwner = "tenant-1"

// Rittenhouse Square area; offsets of ~0.00027 degrees latitude are ~30m.
var (
	siteLat = 39.9526
	siteLng = -75.1652
)

type shiftFixture struct {
	svc       *shiftService
	shiftRepo *fakeShiftRepo
	accounts  *fakeAccountRepo
	employees *fakeEmployeeRepo
	now       time.Time
}

func newShiftFixture(t *testing.T) *shiftFixture {
	t.Helper()

	f := &shiftFixture{
		shiftRepo: newFakeShiftRepo(),
		accounts:  &fakeAccountRepo{accounts: map[int64]*models.Account{}},
		employees: &fakeEmployeeRepo{employees: map[int64]*models.Employee{}},
		now:       time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local), // Wednesday
	}

	f.accounts.accounts[1] = &models.Account{
		ID: 1, Owner: testOwner, Name: "Downtown Office",
		Lat: &siteLat, Lng: &siteLng, GeofenceRadius: models.DefaultGeofenceRadiusM,
	}
	f.employees.employees[1] = &models.Employee{ID: 1, Owner: testOwner, FullName: "Dana Reyes", IsActive: true}
	f.employees.employees[2] = &models.Employee{ID: 2, Owner: testOwner, FullName: "Sam Okafor", IsActive: true}

	f.svc = &shiftService{
		shiftRepo:    f.shiftRepo,
		accountRepo:  f.accounts,
		employeeRepo: f.employees,
		settings:     &fakeSettings{},
		now:          func() time.Time { return f.now },
	}
	return f
}

func (f *shiftFixture) seedShift(employeeID int64, start, end time.Time, status models.ShiftStatus) *models.Shift {
	return f.shiftRepo.add(models.Shift{
		Owner:        testOwner,
		AccountID:    1,
		AccountName:  "Downtown Office",
		EmployeeID:   employeeID,
		EmployeeName: "Dana Reyes",
		StartTime:    start,
		EndTime:      end,
		Status:       status,
	})
}

func day(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, 3, 4, hour, min, 0, 0, time.Local)
}

// --- Conflict detection ---

func TestCreateShift_RejectsOverlap(t *testing.T) {
	f := newShiftFixture(t)
	f.seedShift(1, day(t, 17, 0), day(t, 21, 0), models.ShiftScheduled)

	_, err := f.svc.CreateShift(testOwner, CreateShiftRequest{
		AccountID:  1,
		EmployeeID: 1,
		StartTime:  day(t, 18, 0).Format(time.RFC3339),
		EndTime:    day(t, 19, 0).Format(time.RFC3339),
	})

	var conflictErr *ShiftConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "Dana Reyes", conflictErr.Conflicting.EmployeeName)
	assert.Equal(t, day(t, 17, 0).Unix(), conflictErr.Conflicting.StartTime.Unix())
}

func TestCreateShift_AdjacentWindowsDoNotConflict(t *testing.T) {
	f := newShiftFixture(t)
	f.seedShift(1, day(t, 9, 0), day(t, 12, 0), models.ShiftScheduled)

	shift, err := f.svc.CreateShift(testOwner, CreateShiftRequest{
		AccountID:  1,
		EmployeeID: 1,
		StartTime:  day(t, 12, 0).Format(time.RFC3339),
		EndTime:    day(t, 15, 0).Format(time.RFC3339),
	})

	require.NoError(t, err)
	assert.Equal(t, models.ShiftScheduled, shift.Status)
	assert.Equal(t, "Downtown Office", shift.AccountName)
}

func TestCreateShift_OtherEmployeeSameWindowIsFine(t *testing.T) {
	f := newShiftFixture(t)
	f.seedShift(1, day(t, 9, 0), day(t, 17, 0), models.ShiftScheduled)

	_, err := f.svc.CreateShift(testOwner, CreateShiftRequest{
		AccountID:  1,
		EmployeeID: 2,
		StartTime:  day(t, 10, 0).Format(time.RFC3339),
		EndTime:    day(t, 14, 0).Format(time.RFC3339),
	})
	require.NoError(t, err)
}

func TestCreateShift_RejectsInvertedWindow(t *testing.T) {
	f := newShiftFixture(t)

	_, err := f.svc.CreateShift(testOwner, CreateShiftRequest{
		AccountID:  1,
		EmployeeID: 1,
		StartTime:  day(t, 15, 0).Format(time.RFC3339),
		EndTime:    day(t, 15, 0).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrShiftValidation)
}

func TestCreateShift_UnknownEmployee(t *testing.T) {
	f := newShiftFixture(t)

	_, err := f.svc.CreateShift(testOwner, CreateShiftRequest{
		AccountID:  1,
		EmployeeID: 99,
		StartTime:  day(t, 9, 0).Format(time.RFC3339),
		EndTime:    day(t, 12, 0).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrEmployeeForShiftNotFound)
}

func TestDetectConflict_IgnoresShiftsEndingBeforeProposedStart(t *testing.T) {
	f := newShiftFixture(t)
	f.seedShift(1, day(t, 6, 0), day(t, 8, 0), models.ShiftCompleted)

	conflicting, err := f.svc.DetectConflict(testOwner, 1, day(t, 8, 0), day(t, 10, 0))
	require.NoError(t, err)
	assert.Nil(t, conflicting)
}

// --- Time clock ---

func TestClockIn_WithinGeofence(t *testing.T) {
	f := newShiftFixture(t)
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftScheduled)

	// ~30m north of the site, well inside the 200m default radius.
	device := Position{Lat: siteLat + 0.00027, Lng: siteLng}
	result, err := f.svc.ClockIn(context.Background(), testOwner, shift.ID, StaticPosition(device))

	require.NoError(t, err)
	assert.False(t, result.AlreadyDone)
	assert.False(t, result.GeofenceBypassed)
	assert.Equal(t, models.ShiftStarted, result.Shift.Status)
	require.NotNil(t, result.Shift.ActualStartTime)
	assert.Equal(t, f.now.Unix(), result.Shift.ActualStartTime.Unix())
	assert.InDelta(t, 30, result.DistanceM, 2)

	stored, _ := f.shiftRepo.GetShiftByID(testOwner, shift.ID)
	assert.Equal(t, models.ShiftStarted, stored.Status)
}

func TestClockIn_OutOfRangeLeavesShiftUntouched(t *testing.T) {
	f := newShiftFixture(t)
	radius := 50.0
	f.accounts.accounts[1].GeofenceRadius = radius
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftScheduled)

	// ~80m away against a 50m fence.
	device := Position{Lat: siteLat + 0.00072, Lng: siteLng}
	_, err := f.svc.ClockIn(context.Background(), testOwner, shift.ID, StaticPosition(device))

	var rangeErr *OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.InDelta(t, 80, rangeErr.DistanceM, 2)
	assert.Equal(t, radius, rangeErr.RadiusM)

	stored, _ := f.shiftRepo.GetShiftByID(testOwner, shift.ID)
	assert.Equal(t, models.ShiftScheduled, stored.Status)
	assert.Nil(t, stored.ActualStartTime)
}

func TestClockIn_BypassesWhenSiteHasNoPin(t *testing.T) {
	f := newShiftFixture(t)
	f.accounts.accounts[1].Lat = nil
	f.accounts.accounts[1].Lng = nil
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftScheduled)

	// No provider at all: the bypass path must not try to acquire a fix.
	result, err := f.svc.ClockIn(context.Background(), testOwner, shift.ID, nil)

	require.NoError(t, err)
	assert.True(t, result.GeofenceBypassed)
	assert.Equal(t, models.ShiftStarted, result.Shift.Status)
}

func TestClockIn_FailsWithoutPosition(t *testing.T) {
	f := newShiftFixture(t)
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftScheduled)

	_, err := f.svc.ClockIn(context.Background(), testOwner, shift.ID, nil)
	assert.ErrorIs(t, err, ErrGeolocation)

	stored, _ := f.shiftRepo.GetShiftByID(testOwner, shift.ID)
	assert.Equal(t, models.ShiftScheduled, stored.Status)
}

func TestClockIn_IsIdempotentOnceStarted(t *testing.T) {
	f := newShiftFixture(t)
	started := f.now.Add(-time.Hour)
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftStarted)
	f.shiftRepo.shifts[shift.ID].ActualStartTime = &started

	result, err := f.svc.ClockIn(context.Background(), testOwner, shift.ID, nil)

	require.NoError(t, err)
	assert.True(t, result.AlreadyDone)
	assert.Equal(t, models.ShiftStarted, result.Shift.Status)
	require.NotNil(t, result.Shift.ActualStartTime)
	assert.Equal(t, started.Unix(), result.Shift.ActualStartTime.Unix())
}

func TestClockOut_RequiresConfirmation(t *testing.T) {
	f := newShiftFixture(t)
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftStarted)

	_, err := f.svc.ClockOut(context.Background(), testOwner, shift.ID, false, nil)
	assert.ErrorIs(t, err, ErrCheckOutNotConfirmed)

	stored, _ := f.shiftRepo.GetShiftByID(testOwner, shift.ID)
	assert.Equal(t, models.ShiftStarted, stored.Status)
}

func TestClockOut_RequiresStartedShift(t *testing.T) {
	f := newShiftFixture(t)
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftScheduled)

	device := Position{Lat: siteLat, Lng: siteLng}
	_, err := f.svc.ClockOut(context.Background(), testOwner, shift.ID, true, StaticPosition(device))
	assert.ErrorIs(t, err, ErrShiftNotStarted)
}

func TestClockOut_CompletesStartedShift(t *testing.T) {
	f := newShiftFixture(t)
	started := f.now.Add(-3 * time.Hour)
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftStarted)
	f.shiftRepo.shifts[shift.ID].ActualStartTime = &started

	device := Position{Lat: siteLat, Lng: siteLng}
	result, err := f.svc.ClockOut(context.Background(), testOwner, shift.ID, true, StaticPosition(device))

	require.NoError(t, err)
	assert.Equal(t, models.ShiftCompleted, result.Shift.Status)
	require.NotNil(t, result.Shift.ActualEndTime)
	assert.Equal(t, f.now.Unix(), result.Shift.ActualEndTime.Unix())

	stored, _ := f.shiftRepo.GetShiftByID(testOwner, shift.ID)
	assert.Equal(t, models.ShiftCompleted, stored.Status)
	require.NotNil(t, stored.ActualStartTime)
	assert.Equal(t, started.Unix(), stored.ActualStartTime.Unix())
}

func TestClockOut_OutOfRangeLeavesShiftStarted(t *testing.T) {
	f := newShiftFixture(t)
	radius := 50.0
	f.accounts.accounts[1].GeofenceRadius = radius
	started := f.now.Add(-3 * time.Hour)
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftStarted)
	f.shiftRepo.shifts[shift.ID].ActualStartTime = &started

	device := Position{Lat: siteLat + 0.00072, Lng: siteLng}
	_, err := f.svc.ClockOut(context.Background(), testOwner, shift.ID, true, StaticPosition(device))

	var rangeErr *OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)

	stored, _ := f.shiftRepo.GetShiftByID(testOwner, shift.ID)
	assert.Equal(t, models.ShiftStarted, stored.Status)
	assert.Nil(t, stored.ActualEndTime)
}

func TestClockOut_IsIdempotentOnceCompleted(t *testing.T) {
	f := newShiftFixture(t)
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftCompleted)

	result, err := f.svc.ClockOut(context.Background(), testOwner, shift.ID, true, nil)
	require.NoError(t, err)
	assert.True(t, result.AlreadyDone)
}

// --- Manual edits ---

func TestUpdateShift_ManualPathMaySkipStates(t *testing.T) {
	f := newShiftFixture(t)
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftScheduled)

	status := string(models.ShiftCompleted)
	actualStart := day(t, 11, 5).Format(time.RFC3339)
	actualEnd := day(t, 14, 55).Format(time.RFC3339)
	updated, err := f.svc.UpdateShift(testOwner, shift.ID, UpdateShiftRequest{
		Status:          &status,
		ActualStartTime: &actualStart,
		ActualEndTime:   &actualEnd,
	})

	require.NoError(t, err)
	assert.Equal(t, models.ShiftCompleted, updated.Status)
	require.NotNil(t, updated.ActualStartTime)
	require.NotNil(t, updated.ActualEndTime)
}

func TestUpdateShift_RejectsInvertedActualTimes(t *testing.T) {
	f := newShiftFixture(t)
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftStarted)

	actualStart := day(t, 14, 0).Format(time.RFC3339)
	actualEnd := day(t, 12, 0).Format(time.RFC3339)
	_, err := f.svc.UpdateShift(testOwner, shift.ID, UpdateShiftRequest{
		ActualStartTime: &actualStart,
		ActualEndTime:   &actualEnd,
	})
	assert.ErrorIs(t, err, ErrShiftValidation)
}

func TestUpdateShift_RejectsUnknownStatus(t *testing.T) {
	f := newShiftFixture(t)
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftScheduled)

	status := "Paused"
	_, err := f.svc.UpdateShift(testOwner, shift.ID, UpdateShiftRequest{Status: &status})
	assert.ErrorIs(t, err, ErrShiftValidation)
}

func TestUpdateShift_ReassignsEmployeeAndRefreshesName(t *testing.T) {
	f := newShiftFixture(t)
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftScheduled)

	newEmployee := int64(2)
	updated, err := f.svc.UpdateShift(testOwner, shift.ID, UpdateShiftRequest{EmployeeID: &newEmployee})

	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.EmployeeID)
	assert.Equal(t, "Sam Okafor", updated.EmployeeName)
}

// --- Tenant scoping ---

func TestShiftsAreInvisibleAcrossTenants(t *testing.T) {
	f := newShiftFixture(t)
	shift := f.seedShift(1, day(t, 11, 0), day(t, 15, 0), models.ShiftScheduled)

	_, err := f.svc.GetShiftByID("tenant-2", shift.ID)
	assert.ErrorIs(t, err, ErrShiftNotFound)

	err = f.svc.DeleteShift("tenant-2", shift.ID)
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

// --- Week view ---

func TestWeekSchedule_BucketsSortsAndAnnotates(t *testing.T) {
	f := newShiftFixture(t)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

	// Monday shift still Scheduled long past its start: shown Late.
	late := f.seedShift(1, monday.Add(9*time.Hour), monday.Add(12*time.Hour), models.ShiftScheduled)
	// Two Wednesday shifts seeded out of order.
	evening := f.seedShift(1, day(t, 18, 0), day(t, 21, 0), models.ShiftScheduled)
	morning := f.seedShift(2, day(t, 8, 0), day(t, 10, 0), models.ShiftCompleted)
	// Next Monday: outside the week window.
	f.seedShift(1, monday.AddDate(0, 0, 7).Add(9*time.Hour), monday.AddDate(0, 0, 7).Add(12*time.Hour), models.ShiftScheduled)

	week, err := f.svc.WeekSchedule(context.Background(), testOwner, f.now)
	require.NoError(t, err)

	assert.Equal(t, monday.Unix(), week.WeekStart.Unix())
	require.Len(t, week.Days, 7)

	mondayShifts := week.Days[0].Shifts
	require.Len(t, mondayShifts, 1)
	assert.Equal(t, late.ID, mondayShifts[0].ID)
	assert.Equal(t, models.ShiftLate, mondayShifts[0].DisplayStatus)
	assert.Equal(t, models.ShiftScheduled, mondayShifts[0].Status)

	wednesdayShifts := week.Days[2].Shifts
	require.Len(t, wednesdayShifts, 2)
	assert.Equal(t, morning.ID, wednesdayShifts[0].ID)
	assert.Equal(t, evening.ID, wednesdayShifts[1].ID)
	assert.Equal(t, models.ShiftCompleted, wednesdayShifts[0].DisplayStatus)
	assert.Equal(t, models.ShiftScheduled, wednesdayShifts[1].DisplayStatus)

	assert.Empty(t, week.Days[6].Shifts)
}

func TestWeekSchedule_ShiftInsideGraceIsNotLate(t *testing.T) {
	f := newShiftFixture(t)
	f.svc.settings = &fakeSettings{threshold: 15 * time.Minute}

	// Started 10 minutes ago, inside the 15 minute grace.
	f.seedShift(1, f.now.Add(-10*time.Minute), f.now.Add(3*time.Hour), models.ShiftScheduled)

	week, err := f.svc.WeekSchedule(context.Background(), testOwner, f.now)
	require.NoError(t, err)

	wednesdayShifts := week.Days[2].Shifts
	require.Len(t, wednesdayShifts, 1)
	assert.Equal(t, models.ShiftScheduled, wednesdayShifts[0].DisplayStatus)
}
