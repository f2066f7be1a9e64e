package models

import "time"

// ShiftStatus is the persisted lifecycle state of a shift. It only ever
// advances: Scheduled -> Started -> Completed.
type ShiftStatus string

const (
	ShiftScheduled ShiftStatus = "Scheduled"
	ShiftStarted   ShiftStatus = "Started"
	ShiftCompleted ShiftStatus = "Completed"

	// ShiftLate is a derived display status, never stored. It applies when a
	// shift is still Scheduled past its start time plus the tenant's alert
	// threshold.
	ShiftLate ShiftStatus = "Late"
)

// rank orders the persisted statuses for monotonicity checks.
var statusRank = map[ShiftStatus]int{
	ShiftScheduled: 0,
	ShiftStarted:   1,
	ShiftCompleted: 2,
}

// IsValidShiftStatus reports whether s is a persistable status value.
func IsValidShiftStatus(s string) bool {
	_, ok := statusRank[ShiftStatus(s)]
	return ok
}

// CanAdvanceTo reports whether the automated (clock-in/clock-out) path may
// move a shift from s to next. Only single forward steps are allowed; the
// manual-edit path is exempt from this check.
func (s ShiftStatus) CanAdvanceTo(next ShiftStatus) bool {
	cur, ok := statusRank[s]
	if !ok {
		return false
	}
	nxt, ok := statusRank[next]
	if !ok {
		return false
	}
	return nxt == cur+1
}

// AtLeast reports whether s has reached the given status.
func (s ShiftStatus) AtLeast(other ShiftStatus) bool {
	return statusRank[s] >= statusRank[other]
}

// Shift is the central scheduling entity: one employee at one account for a
// planned time window. Account and employee names are denormalized for
// display, matching the wire contract.
type Shift struct {
	ID              int64       `json:"id"`
	Owner           string      `json:"owner" db:"owner"`
	AccountID       int64       `json:"accountId" db:"account_id"`
	AccountName     string      `json:"accountName" db:"account_name"`
	EmployeeID      int64       `json:"employeeId" db:"employee_id"`
	EmployeeName    string      `json:"employeeName" db:"employee_name"`
	StartTime       time.Time   `json:"startTime" db:"start_time"`
	EndTime         time.Time   `json:"endTime" db:"end_time"`
	Status          ShiftStatus `json:"status" db:"status"`
	ActualStartTime *time.Time  `json:"actualStartTime,omitempty" db:"actual_start_time"`
	ActualEndTime   *time.Time  `json:"actualEndTime,omitempty" db:"actual_end_time"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// DisplayStatus returns the status to render at query time: the persisted
// status, or Late when a Scheduled shift has passed its start time by more
// than the alert threshold.
func (s *Shift) DisplayStatus(now time.Time, alertThreshold time.Duration) ShiftStatus {
	if s.Status == ShiftScheduled && now.After(s.StartTime.Add(alertThreshold)) {
		return ShiftLate
	}
	return s.Status
}

// Overlaps reports whether the shift's planned window intersects the
// half-open interval [start, end). Adjacent windows do not overlap.
func (s *Shift) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}

// ShiftFilters narrows shift list queries. EndTimeAfter maps to the
// store-side range filter on end_time that both the conflict detector and
// the week view rely on.
type ShiftFilters struct {
	EmployeeID   *int64
	AccountID    *int64
	EndTimeAfter *time.Time
	Page         int
	PageSize     int
}

// DaySchedule is one calendar day's slice of a week view, shifts sorted
// ascending by start time and annotated with their display status.
type DaySchedule struct {
	Date   time.Time        `json:"date"`
	Shifts []AnnotatedShift `json:"shifts"`
}

// AnnotatedShift pairs a shift with its derived display status.
type AnnotatedShift struct {
	Shift
	DisplayStatus ShiftStatus `json:"displayStatus"`
}

// WeekSchedule is the seven-day view anchored at a Monday.
type WeekSchedule struct {
	WeekStart time.Time     `json:"weekStart"`
	Days      []DaySchedule `json:"days"`
}
