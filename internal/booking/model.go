package booking

import (
	"net/http"
	"time"

	"github.com/campuskit/venue-booking-engine/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidInterval     = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrStartTimePast       = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrResourceNotFound    = apperror.New(http.StatusNotFound, "resource not found")
	ErrResourceUnavailable = apperror.New(http.StatusConflict, "resource is not accepting bookings")
	ErrInvalidTransition   = apperror.New(http.StatusConflict, "invalid booking status transition")
	ErrInvalidStatus       = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrNotReschedulable    = apperror.New(http.StatusConflict, "only pending or approved bookings can be rescheduled")
	ErrConcurrentAdmission = apperror.New(http.StatusConflict, "time slot was booked concurrently")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Disposition is the status-dependent part of a booking. Each variant carries
// exactly the fields that exist in that status, so an approval timestamp cannot
// be observed on a pending booking.
type Disposition interface {
	Status() Status
}

// Pending is the initial disposition for bookings awaiting manual approval.
type Pending struct{}

// Approved records who approved the booking and when. ApprovedBy is empty when
// the resource's auto-approve policy granted the booking at admission time.
type Approved struct {
	ApprovedBy string
	ApprovedAt time.Time
}

// Rejected records why the booking was turned down.
type Rejected struct {
	Reason string
}

// Cancelled marks a booking withdrawn by its requester.
type Cancelled struct{}

func (Pending) Status() Status   { return StatusPending }
func (Approved) Status() Status  { return StatusApproved }
func (Rejected) Status() Status  { return StatusRejected }
func (Cancelled) Status() Status { return StatusCancelled }

// CanTransition reports whether the status state machine permits from -> to.
// Pending may move to any terminal status; approved may only be cancelled.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected || to == StatusCancelled
	case StatusApproved:
		return to == StatusCancelled
	default:
		return false
	}
}

// IsActive reports whether a status blocks other bookings on the same resource.
func IsActive(s Status) bool {
	return s == StatusPending || s == StatusApproved
}

// Booking is the unit of reservation on a resource. Its interval is half-open:
// [StartTime, EndTime), so a booking ending at T never blocks one starting at T.
type Booking struct {
	ID            string
	ResourceID    string
	ResourceName  string
	RequesterID   string
	RequesterName string
	StartTime     time.Time
	EndTime       time.Time
	Purpose       string
	Disposition   Disposition
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Status returns the booking's current status via its disposition.
func (b *Booking) Status() Status {
	return b.Disposition.Status()
}

// Active reports whether the booking counts for conflict detection.
func (b *Booking) Active() bool {
	return IsActive(b.Status())
}

// Slot is a free interval offered as an alternative to a conflicting request.
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}

// ConflictEntry is the caller-facing trim of a conflicting booking.
type ConflictEntry struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
	Purpose   string
}

// ConflictInfo is the structured negative result of an admission attempt: the
// bookings that blocked the request and free slots of the same duration on the
// same day.
type ConflictInfo struct {
	Conflicts   []ConflictEntry
	Suggestions []Slot
}

// Availability is the result of a read-only probe.
type Availability struct {
	Available   bool
	Conflicts   []ConflictEntry
	Suggestions []Slot
}

// Filter defines parameters for listing bookings.
type Filter struct {
	RequesterID string
	ResourceID  string
	Status      string
	StartTime   *time.Time // Filter bookings ending after this time
	EndTime     *time.Time // Filter bookings starting before this time
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}

// NewConflictEntries trims bookings down to the fields callers may see.
func NewConflictEntries(bookings []*Booking) []ConflictEntry {
	entries := make([]ConflictEntry, len(bookings))
	for i, b := range bookings {
		entries[i] = ConflictEntry{
			ID:        b.ID,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Purpose:   b.Purpose,
		}
	}
	return entries
}
