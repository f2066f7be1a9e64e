package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cleanops_backend/internal/models"
	"cleanops_backend/internal/repositories"
	"cleanops_backend/pkg/timeutil"
)

// --- Custom Service Errors for Shifts ---
var (
	ErrShiftNotFound            = errors.New("shift not found")
	ErrShiftValidation          = errors.New("shift validation error")
	ErrShiftTimeFormat          = errors.New("invalid time format for shift, please use RFC3339 like YYYY-MM-DDTHH:MM:SSZ")
	ErrAccountForShiftNotFound  = errors.New("account specified for shift not found")
	ErrEmployeeForShiftNotFound = errors.New("employee specified for shift not found")
	ErrShiftNotStarted          = errors.New("shift has not been started; clock in before clocking out")
	ErrCheckOutNotConfirmed     = errors.New("clock-out requires explicit confirmation")
)

// ShiftConflictError reports an overlapping shift found at creation time.
// It names the colliding shift so the caller can show who is double-booked.
type ShiftConflictError struct {
	Conflicting models.Shift
}

func (e *ShiftConflictError) Error() string {
	return fmt.Sprintf("%s already has a shift at %s from %s to %s",
		e.Conflicting.EmployeeName, e.Conflicting.AccountName,
		e.Conflicting.StartTime.Format(time.RFC3339), e.Conflicting.EndTime.Format(time.RFC3339))
}

// --- Shift DTOs ---
type CreateShiftRequest struct {
	AccountID  int64  `json:"accountId" binding:"required"`
	EmployeeID int64  `json:"employeeId" binding:"required"`
	StartTime  string `json:"startTime" binding:"required"`
	EndTime    string `json:"endTime" binding:"required"`
}

// UpdateShiftRequest is the manual-edit path: any field may be set directly,
// including status and actual timestamps, and it is exempt from the
// sequential-transition rule that governs clock-in/clock-out.
type UpdateShiftRequest struct {
	AccountID       *int64  `json:"accountId"`
	EmployeeID      *int64  `json:"employeeId"`
	StartTime       *string `json:"startTime"`
	EndTime         *string `json:"endTime"`
	Status          *string `json:"status"`
	ActualStartTime *string `json:"actualStartTime"`
	ActualEndTime   *string `json:"actualEndTime"`
}

// ClockResult is the outcome of a clock-in or clock-out command. The UI
// layer pattern-matches on it instead of receiving interleaved callbacks.
type ClockResult struct {
	Shift            *models.Shift `json:"shift"`
	AlreadyDone      bool          `json:"alreadyDone"`      // idempotent no-op: shift was at or past the target state
	GeofenceBypassed bool          `json:"geofenceBypassed"` // site has no pin; allowed with a warning
	DistanceM        float64       `json:"distanceMeters"`
	RadiusM          float64       `json:"radiusMeters"`
}

// --- ShiftService Interface ---
type ShiftService interface {
	CreateShift(owner string, req CreateShiftRequest) (*models.Shift, error)
	GetShiftByID(owner string, shiftID int64) (*models.Shift, error)
	GetShifts(owner string, filters models.ShiftFilters) ([]models.Shift, int, error)
	UpdateShift(owner string, shiftID int64, req UpdateShiftRequest) (*models.Shift, error)
	DeleteShift(owner string, shiftID int64) error

	DetectConflict(owner string, employeeID int64, start, end time.Time) (*models.Shift, error)
	ClockIn(ctx context.Context, owner string, shiftID int64, provider PositionProvider) (*ClockResult, error)
	ClockOut(ctx context.Context, owner string, shiftID int64, confirmed bool, provider PositionProvider) (*ClockResult, error)
	WeekSchedule(ctx context.Context, owner string, anchor time.Time) (*models.WeekSchedule, error)
}

// --- shiftService Implementation ---
type shiftService struct {
	shiftRepo    repositories.ShiftRepository
	accountRepo  repositories.AccountRepository
	employeeRepo repositories.EmployeeRepository
	settings     SettingsService
	db           *sql.DB
	now          func() time.Time
}

// NewShiftService creates a new instance of ShiftService.
func NewShiftService(
	sr repositories.ShiftRepository,
	ar repositories.AccountRepository,
	er repositories.EmployeeRepository,
	settings SettingsService,
	db *sql.DB,
) ShiftService {
	return &shiftService{
		shiftRepo:    sr,
		accountRepo:  ar,
		employeeRepo: er,
		settings:     settings,
		db:           db,
		now:          time.Now,
	}
}

func parseDateTime(dateTimeStr string, errorToReturn error) (time.Time, error) {
	parsedTime, err := time.Parse(time.RFC3339, dateTimeStr)
	if err != nil {
		// Accept local times without a zone, common from dashboard clients.
		parsedTime, err = time.ParseInLocation("2006-01-02T15:04:05", dateTimeStr, time.Local)
		if err != nil {
			return time.Time{}, errorToReturn
		}
	}
	return parsedTime, nil
}

func (s *shiftService) parseShiftWindow(startStr, endStr string) (time.Time, time.Time, error) {
	startTime, err := parseDateTime(strings.TrimSpace(startStr), ErrShiftTimeFormat)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("startTime: %w", err)
	}
	endTime, err := parseDateTime(strings.TrimSpace(endStr), ErrShiftTimeFormat)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("endTime: %w", err)
	}
	if !endTime.After(startTime) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end time must be after start time", ErrShiftValidation)
	}
	return startTime, endTime, nil
}

// DetectConflict returns the first existing shift of the employee that
// overlaps [start, end), or nil. The store-side filter keeps only shifts
// ending after the proposed start; anything ending at or before it cannot
// overlap. Among those, overlap exists iff an existing shift starts before
// the proposed end. Adjacent windows are not conflicts.
func (s *shiftService) DetectConflict(owner string, employeeID int64, start, end time.Time) (*models.Shift, error) {
	candidates, err := s.shiftRepo.GetShiftsEndingAfter(owner, employeeID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts for conflict check: %w", err)
	}
	for i := range candidates {
		if candidates[i].StartTime.Before(end) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

func (s *shiftService) CreateShift(owner string, req CreateShiftRequest) (*models.Shift, error) {
	startTime, endTime, err := s.parseShiftWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetAccountByID(owner, req.AccountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrAccountForShiftNotFound, req.AccountID)
		}
		return nil, fmt.Errorf("failed to validate account for shift: %w", err)
	}

	employee, err := s.employeeRepo.GetEmployeeByID(owner, req.EmployeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrEmployeeForShiftNotFound, req.EmployeeID)
		}
		return nil, fmt.Errorf("failed to validate employee for shift: %w", err)
	}

	// Conflict check and insert are two round trips; two simultaneous
	// creations for the same window can both pass. Accepted, not guaranteed.
	conflicting, err := s.DetectConflict(owner, req.EmployeeID, startTime, endTime)
	if err != nil {
		return nil, err
	}
	if conflicting != nil {
		return nil, &ShiftConflictError{Conflicting: *conflicting}
	}

	shift := &models.Shift{
		Owner:        owner,
		AccountID:    account.ID,
		AccountName:  account.Name,
		EmployeeID:   employee.ID,
		EmployeeName: employee.FullName,
		StartTime:    startTime,
		EndTime:      endTime,
		Status:       models.ShiftScheduled,
	}

	created, err := s.shiftRepo.CreateShift(s.db, shift)
	if err != nil {
		return nil, fmt.Errorf("failed to create shift in repository: %w", err)
	}
	return created, nil
}

func (s *shiftService) GetShiftByID(owner string, shiftID int64) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetShiftByID(owner, shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to get shift by ID: %w", err)
	}
	return shift, nil
}

func (s *shiftService) GetShifts(owner string, filters models.ShiftFilters) ([]models.Shift, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 50
	}
	shifts, totalCount, err := s.shiftRepo.GetShifts(owner, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get shifts: %w", err)
	}
	return shifts, totalCount, nil
}

// UpdateShift persists arbitrary field changes. Conflict detection is not
// re-run on edits; that matches the product's creation-only policy.
func (s *shiftService) UpdateShift(owner string, shiftID int64, req UpdateShiftRequest) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetShiftByID(owner, shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to find shift for update: %w", err)
	}

	if req.AccountID != nil && *req.AccountID != shift.AccountID {
		account, accErr := s.accountRepo.GetAccountByID(owner, *req.AccountID)
		if accErr != nil {
			if errors.Is(accErr, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %d", ErrAccountForShiftNotFound, *req.AccountID)
			}
			return nil, fmt.Errorf("failed to validate account for shift update: %w", accErr)
		}
		shift.AccountID = account.ID
		shift.AccountName = account.Name
	}

	if req.EmployeeID != nil && *req.EmployeeID != shift.EmployeeID {
		employee, empErr := s.employeeRepo.GetEmployeeByID(owner, *req.EmployeeID)
		if empErr != nil {
			if errors.Is(empErr, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: ID %d", ErrEmployeeForShiftNotFound, *req.EmployeeID)
			}
			return nil, fmt.Errorf("failed to validate employee for shift update: %w", empErr)
		}
		shift.EmployeeID = employee.ID
		shift.EmployeeName = employee.FullName
	}

	if req.StartTime != nil || req.EndTime != nil {
		startStr := shift.StartTime.Format(time.RFC3339)
		endStr := shift.EndTime.Format(time.RFC3339)
		if req.StartTime != nil {
			startStr = *req.StartTime
		}
		if req.EndTime != nil {
			endStr = *req.EndTime
		}
		newStart, newEnd, timeErr := s.parseShiftWindow(startStr, endStr)
		if timeErr != nil {
			return nil, timeErr
		}
		shift.StartTime = newStart
		shift.EndTime = newEnd
	}

	if req.Status != nil {
		if !models.IsValidShiftStatus(*req.Status) {
			return nil, fmt.Errorf("%w: invalid status '%s'", ErrShiftValidation, *req.Status)
		}
		shift.Status = models.ShiftStatus(*req.Status)
	}

	if req.ActualStartTime != nil {
		if strings.TrimSpace(*req.ActualStartTime) == "" {
			shift.ActualStartTime = nil
		} else {
			t, parseErr := parseDateTime(*req.ActualStartTime, ErrShiftTimeFormat)
			if parseErr != nil {
				return nil, fmt.Errorf("actualStartTime: %w", parseErr)
			}
			shift.ActualStartTime = &t
		}
	}
	if req.ActualEndTime != nil {
		if strings.TrimSpace(*req.ActualEndTime) == "" {
			shift.ActualEndTime = nil
		} else {
			t, parseErr := parseDateTime(*req.ActualEndTime, ErrShiftTimeFormat)
			if parseErr != nil {
				return nil, fmt.Errorf("actualEndTime: %w", parseErr)
			}
			shift.ActualEndTime = &t
		}
	}

	if shift.ActualStartTime != nil && shift.ActualEndTime != nil && !shift.ActualEndTime.After(*shift.ActualStartTime) {
		return nil, fmt.Errorf("%w: actual end time must be after actual start time", ErrShiftValidation)
	}

	updated, err := s.shiftRepo.UpdateShift(s.db, shift)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to update shift in repository: %w", err)
	}
	return updated, nil
}

// DeleteShift cancels a shift. Cancellation is permitted from any state and
// removes the record.
func (s *shiftService) DeleteShift(owner string, shiftID int64) error {
	err := s.shiftRepo.DeleteShift(s.db, owner, shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

// ClockIn advances a Scheduled shift to Started after geofence verification.
// Already-started (or completed) shifts are a no-op: status never regresses.
// An out-of-range device mutates nothing.
func (s *shiftService) ClockIn(ctx context.Context, owner string, shiftID int64, provider PositionProvider) (*ClockResult, error) {
	shift, err := s.GetShiftByID(owner, shiftID)
	if err != nil {
		return nil, err
	}

	if shift.Status.AtLeast(models.ShiftStarted) {
		return &ClockResult{Shift: shift, AlreadyDone: true}, nil
	}

	verdict, err := s.verifyShiftLocation(ctx, owner, shift, provider)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.shiftRepo.UpdateShiftClock(s.db, owner, shift.ID, models.ShiftStarted, &now, nil); err != nil {
		return nil, fmt.Errorf("failed to record clock-in: %w", err)
	}

	shift.Status = models.ShiftStarted
	shift.ActualStartTime = &now
	return &ClockResult{
		Shift:            shift,
		GeofenceBypassed: verdict.Bypassed,
		DistanceM:        verdict.DistanceM,
		RadiusM:          verdict.RadiusM,
	}, nil
}

// ClockOut advances a Started shift to Completed. The shift must have been
// started through clock-in first: the automated path never skips Started.
// The caller must confirm explicitly since completing a shift is
// irreversible for the day.
func (s *shiftService) ClockOut(ctx context.Context, owner string, shiftID int64, confirmed bool, provider PositionProvider) (*ClockResult, error) {
	if !confirmed {
		return nil, ErrCheckOutNotConfirmed
	}

	shift, err := s.GetShiftByID(owner, shiftID)
	if err != nil {
		return nil, err
	}

	if shift.Status == models.ShiftCompleted {
		return &ClockResult{Shift: shift, AlreadyDone: true}, nil
	}
	if !shift.Status.CanAdvanceTo(models.ShiftCompleted) {
		return nil, ErrShiftNotStarted
	}

	verdict, err := s.verifyShiftLocation(ctx, owner, shift, provider)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if shift.ActualStartTime != nil && !now.After(*shift.ActualStartTime) {
		return nil, fmt.Errorf("%w: actual end time must be after actual start time", ErrShiftValidation)
	}

	if err := s.shiftRepo.UpdateShiftClock(s.db, owner, shift.ID, models.ShiftCompleted, nil, &now); err != nil {
		return nil, fmt.Errorf("failed to record clock-out: %w", err)
	}

	shift.Status = models.ShiftCompleted
	shift.ActualEndTime = &now
	return &ClockResult{
		Shift:            shift,
		GeofenceBypassed: verdict.Bypassed,
		DistanceM:        verdict.DistanceM,
		RadiusM:          verdict.RadiusM,
	}, nil
}

func (s *shiftService) verifyShiftLocation(ctx context.Context, owner string, shift *models.Shift, provider PositionProvider) (GeofenceResult, error) {
	account, err := s.accountRepo.GetAccountByID(owner, shift.AccountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return GeofenceResult{}, fmt.Errorf("%w: ID %d", ErrAccountForShiftNotFound, shift.AccountID)
		}
		return GeofenceResult{}, fmt.Errorf("failed to load account for geofence check: %w", err)
	}

	// A site without a pin cannot be geofenced: skip position acquisition
	// entirely and let the caller surface the bypass warning.
	if !account.HasCoordinates() {
		return GeofenceResult{OnSite: true, Bypassed: true}, nil
	}

	device, err := acquirePosition(ctx, provider)
	if err != nil {
		return GeofenceResult{}, err
	}

	verdict := VerifyOnSite(device, account)
	if !verdict.OnSite {
		return GeofenceResult{}, &OutOfRangeError{DistanceM: verdict.DistanceM, RadiusM: verdict.RadiusM}
	}
	return verdict, nil
}

// WeekSchedule renders the week containing anchor: seven day buckets from
// the ISO Monday, each day's shifts sorted ascending by start time and
// annotated with the derived display status.
func (s *shiftService) WeekSchedule(ctx context.Context, owner string, anchor time.Time) (*models.WeekSchedule, error) {
	weekStart := timeutil.StartOfWeek(anchor)
	weekEnd := weekStart.AddDate(0, 0, 7)

	shifts, _, err := s.shiftRepo.GetShifts(owner, models.ShiftFilters{EndTimeAfter: &weekStart})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts for week view: %w", err)
	}

	threshold := s.settings.AlertThreshold(ctx, owner)
	now := s.now()

	week := &models.WeekSchedule{
		WeekStart: weekStart,
		Days:      make([]models.DaySchedule, 7),
	}
	for i := range week.Days {
		week.Days[i] = models.DaySchedule{
			Date:   weekStart.AddDate(0, 0, i),
			Shifts: []models.AnnotatedShift{},
		}
	}

	for _, shift := range shifts {
		if !shift.StartTime.Before(weekEnd) {
			continue
		}
		for i := range week.Days {
			if timeutil.SameCalendarDay(shift.StartTime, week.Days[i].Date) {
				week.Days[i].Shifts = append(week.Days[i].Shifts, models.AnnotatedShift{
					Shift:         shift,
					DisplayStatus: shift.DisplayStatus(now, threshold),
				})
				break
			}
		}
	}

	for i := range week.Days {
		day := week.Days[i].Shifts
		sort.Slice(day, func(a, b int) bool {
			return day[a].StartTime.Before(day[b].StartTime)
		})
	}
	return week, nil
}
