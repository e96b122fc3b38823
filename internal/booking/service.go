package booking

import (
	"context"
	"errors"
	"time"

	"github.com/campuskit/venue-booking-engine/internal/pkg/identity"
	"github.com/campuskit/venue-booking-engine/internal/resource"
)

type CreateRequest struct {
	ResourceID    string
	RequesterID   string
	RequesterName string
	StartTime     time.Time
	EndTime       time.Time
	Purpose       string
}

// Options tunes the admission flow.
type Options struct {
	Window Window

	// MaxSuggestions caps the number of alternative slots returned on conflict.
	MaxSuggestions int

	// AdmissionRetries bounds how often a raced insert is re-attempted before
	// the race is reported back as an ordinary conflict.
	AdmissionRetries int
}

type Service interface {
	// RequestBooking runs the full admission flow. Exactly one of the returned
	// booking and conflict info is non-nil on success; a conflict is a valid
	// negative result, not an error, and persists nothing.
	RequestBooking(ctx context.Context, req CreateRequest) (*Booking, *ConflictInfo, error)

	// CheckAvailability is the read-only probe: same detection and suggestion
	// computation as admission, never persists.
	CheckAvailability(ctx context.Context, resourceID string, start, end time.Time) (*Availability, error)

	// FindConflicts returns every active booking on the resource overlapping
	// [start, end), ordered deterministically. Pure query.
	FindConflicts(ctx context.Context, resourceID string, start, end time.Time, excludeBookingID string) ([]*Booking, error)

	// Reschedule moves an active booking to a new interval, re-running conflict
	// detection with the booking itself excluded so it never conflicts with its
	// own current slot. Same non-nil-XOR contract as RequestBooking.
	Reschedule(ctx context.Context, id string, start, end time.Time) (*Booking, *ConflictInfo, error)

	// FindAlternatives returns up to the configured number of free slots of the
	// given duration within the operating window of day.
	FindAlternatives(ctx context.Context, resourceID string, duration time.Duration, day time.Time) ([]Slot, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	Approve(ctx context.Context, id, approverID string) (*Booking, error)
	Reject(ctx context.Context, id, reason string) (*Booking, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo       Repository
	resService resource.Service
	idgen      identity.Generator
	opts       Options
	now        func() time.Time
}

func NewService(repo Repository, resService resource.Service, idgen identity.Generator, opts Options) Service {
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = 3
	}
	if opts.AdmissionRetries < 0 {
		opts.AdmissionRetries = 0
	}
	return &service{
		repo:       repo,
		resService: resService,
		idgen:      idgen,
		opts:       opts,
		now:        time.Now,
	}
}

func (s *service) RequestBooking(ctx context.Context, req CreateRequest) (*Booking, *ConflictInfo, error) {
	if err := s.validateInterval(req.StartTime, req.EndTime); err != nil {
		return nil, nil, err
	}

	res, err := s.lookupResource(ctx, req.ResourceID)
	if err != nil {
		return nil, nil, err
	}

	// Check-then-insert is raced by concurrent admissions for the same
	// resource; the store's exclusion constraint is the arbiter. On a lost
	// race the whole detect+insert sequence re-runs a bounded number of times.
	for attempt := 0; attempt <= s.opts.AdmissionRetries; attempt++ {
		conflicts, err := s.repo.ListActiveOverlapping(ctx, req.ResourceID, req.StartTime, req.EndTime, "")
		if err != nil {
			return nil, nil, err
		}

		if len(conflicts) > 0 {
			info, err := s.buildConflictInfo(ctx, req.ResourceID, req.StartTime, req.EndTime, conflicts)
			if err != nil {
				return nil, nil, err
			}
			return nil, info, nil
		}

		b := &Booking{
			ID:            s.idgen.NewID(),
			ResourceID:    req.ResourceID,
			ResourceName:  res.Name,
			RequesterID:   req.RequesterID,
			RequesterName: req.RequesterName,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Purpose:       req.Purpose,
			Disposition:   s.initialDisposition(res),
		}

		err = s.repo.Create(ctx, b)
		if err == nil {
			return b, nil, nil
		}
		if !errors.Is(err, ErrConcurrentAdmission) {
			return nil, nil, err
		}
	}

	// Raced on every attempt. Report whatever is blocking now as a conflict.
	conflicts, err := s.repo.ListActiveOverlapping(ctx, req.ResourceID, req.StartTime, req.EndTime, "")
	if err != nil {
		return nil, nil, err
	}
	info, err := s.buildConflictInfo(ctx, req.ResourceID, req.StartTime, req.EndTime, conflicts)
	if err != nil {
		return nil, nil, err
	}
	return nil, info, nil
}

func (s *service) CheckAvailability(ctx context.Context, resourceID string, start, end time.Time) (*Availability, error) {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	if _, err := s.lookupResource(ctx, resourceID); err != nil {
		return nil, err
	}

	conflicts, err := s.repo.ListActiveOverlapping(ctx, resourceID, start, end, "")
	if err != nil {
		return nil, err
	}

	if len(conflicts) == 0 {
		return &Availability{Available: true}, nil
	}

	suggestions, err := s.FindAlternatives(ctx, resourceID, end.Sub(start), start)
	if err != nil {
		return nil, err
	}

	return &Availability{
		Available:   false,
		Conflicts:   NewConflictEntries(conflicts),
		Suggestions: suggestions,
	}, nil
}

func (s *service) FindConflicts(ctx context.Context, resourceID string, start, end time.Time, excludeBookingID string) ([]*Booking, error) {
	return s.repo.ListActiveOverlapping(ctx, resourceID, start, end, excludeBookingID)
}

func (s *service) Reschedule(ctx context.Context, id string, start, end time.Time) (*Booking, *ConflictInfo, error) {
	if err := s.validateInterval(start, end); err != nil {
		return nil, nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !b.Active() {
		return nil, nil, ErrNotReschedulable
	}

	// Same race window as admission: detection excludes the booking's own row,
	// and the store's exclusion constraint arbitrates concurrent moves.
	for attempt := 0; attempt <= s.opts.AdmissionRetries; attempt++ {
		conflicts, err := s.repo.ListActiveOverlapping(ctx, b.ResourceID, start, end, b.ID)
		if err != nil {
			return nil, nil, err
		}

		if len(conflicts) > 0 {
			info, err := s.buildConflictInfo(ctx, b.ResourceID, start, end, conflicts)
			if err != nil {
				return nil, nil, err
			}
			return nil, info, nil
		}

		moved := *b
		moved.StartTime = start
		moved.EndTime = end

		err = s.repo.UpdateInterval(ctx, &moved)
		if err == nil {
			return &moved, nil, nil
		}
		if !errors.Is(err, ErrConcurrentAdmission) {
			return nil, nil, err
		}
	}

	conflicts, err := s.repo.ListActiveOverlapping(ctx, b.ResourceID, start, end, b.ID)
	if err != nil {
		return nil, nil, err
	}
	info, err := s.buildConflictInfo(ctx, b.ResourceID, start, end, conflicts)
	if err != nil {
		return nil, nil, err
	}
	return nil, info, nil
}

func (s *service) FindAlternatives(ctx context.Context, resourceID string, duration time.Duration, day time.Time) ([]Slot, error) {
	windowStart, windowEnd := s.opts.Window.ForDay(day)

	active, err := s.repo.ListActiveInWindow(ctx, resourceID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	return FreeSlots(windowStart, windowEnd, duration, active, s.opts.MaxSuggestions), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Approve(ctx context.Context, id, approverID string) (*Booking, error) {
	return s.transition(ctx, id, Approved{ApprovedBy: approverID, ApprovedAt: s.now().UTC()})
}

func (s *service) Reject(ctx context.Context, id, reason string) (*Booking, error) {
	return s.transition(ctx, id, Rejected{Reason: reason})
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, Cancelled{})
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) transition(ctx context.Context, id string, to Disposition) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(b.Status(), to.Status()) {
		return nil, ErrInvalidTransition
	}
	b.Disposition = to

	if err := s.repo.UpdateDisposition(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) validateInterval(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return ErrInvalidInterval
	}
	if start.Before(s.now().UTC()) {
		return ErrStartTimePast
	}
	return nil
}

func (s *service) lookupResource(ctx context.Context, resourceID string) (*resource.Resource, error) {
	res, err := s.resService.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	if !res.IsAvailable {
		return nil, ErrResourceUnavailable
	}
	return res, nil
}

func (s *service) initialDisposition(res *resource.Resource) Disposition {
	if res.AutoApprove {
		// Policy approval; no approver identity to record.
		return Approved{ApprovedAt: s.now().UTC()}
	}
	return Pending{}
}

func (s *service) buildConflictInfo(ctx context.Context, resourceID string, start, end time.Time, conflicts []*Booking) (*ConflictInfo, error) {
	suggestions, err := s.FindAlternatives(ctx, resourceID, end.Sub(start), start)
	if err != nil {
		return nil, err
	}
	return &ConflictInfo{
		Conflicts:   NewConflictEntries(conflicts),
		Suggestions: suggestions,
	}, nil
}
