package http

import (
	"time"

	"github.com/campuskit/venue-booking-engine/internal/booking"
	"github.com/campuskit/venue-booking-engine/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	ResourceID    string     `form:"resource_id" binding:"omitempty,uuid"`
	RequesterID   string     `form:"requester_id"`
	Status        string     `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	StartTimeFrom *time.Time `form:"start_time_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTimeTo   *time.Time `form:"start_time_to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy        string     `form:"sort_by" binding:"omitempty,oneof=start_time end_time created_at status"`
}

// Validate performs custom validation for ListBookingsRequest.
func (r *ListBookingsRequest) Validate() error {
	if r.StartTimeFrom != nil && r.StartTimeTo != nil {
		if r.StartTimeFrom.After(*r.StartTimeTo) {
			return booking.ErrInvalidInterval
		}
	}
	return nil
}

type BookingResponse struct {
	ID              string     `json:"id"`
	ResourceID      string     `json:"resource_id"`
	ResourceName    string     `json:"resource_name"`
	RequesterID     string     `json:"requester_id"`
	RequesterName   string     `json:"requester_name"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time"`
	Purpose         string     `json:"purpose"`
	Status          string     `json:"status"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID,
		ResourceID:    b.ResourceID,
		ResourceName:  b.ResourceName,
		RequesterID:   b.RequesterID,
		RequesterName: b.RequesterName,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Purpose:       b.Purpose,
		Status:        string(b.Status()),
	}

	switch d := b.Disposition.(type) {
	case booking.Approved:
		if d.ApprovedBy != "" {
			resp.ApprovedBy = &d.ApprovedBy
		}
		at := d.ApprovedAt
		resp.ApprovedAt = &at
	case booking.Rejected:
		reason := d.Reason
		resp.RejectionReason = &reason
	}

	resp.CreatedAt = b.CreatedAt
	resp.UpdatedAt = b.UpdatedAt
	return resp
}

type CreateBookingRequest struct {
	ResourceID    string    `json:"resource_id" binding:"required,uuid"`
	RequesterID   string    `json:"requester_id" binding:"required"`
	RequesterName string    `json:"requester_name" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
	Purpose       string    `json:"purpose"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return booking.ErrInvalidInterval
	}
	return nil
}

type SlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type ConflictEntryResponse struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Purpose   string    `json:"purpose"`
}

// ConflictResponse is the 409 body returned when admission is blocked.
type ConflictResponse struct {
	Error       string                  `json:"error"`
	Conflicts   []ConflictEntryResponse `json:"conflicts"`
	Suggestions []SlotResponse          `json:"suggestions"`
}

func NewConflictResponse(info *booking.ConflictInfo) ConflictResponse {
	resp := ConflictResponse{
		Error:       "time slot already booked",
		Conflicts:   make([]ConflictEntryResponse, len(info.Conflicts)),
		Suggestions: make([]SlotResponse, len(info.Suggestions)),
	}
	for i, c := range info.Conflicts {
		resp.Conflicts[i] = ConflictEntryResponse{
			ID:        c.ID,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
			Purpose:   c.Purpose,
		}
	}
	for i, s := range info.Suggestions {
		resp.Suggestions[i] = SlotResponse{StartTime: s.StartTime, EndTime: s.EndTime}
	}
	return resp
}

// CheckAvailabilityRequest defines query parameters for the availability probe.
type CheckAvailabilityRequest struct {
	StartTime time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   time.Time `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// Validate performs custom validation for CheckAvailabilityRequest.
func (r *CheckAvailabilityRequest) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return booking.ErrInvalidInterval
	}
	return nil
}

type AvailabilityResponse struct {
	Available   bool                    `json:"available"`
	Conflicts   []ConflictEntryResponse `json:"conflicts,omitempty"`
	Suggestions []SlotResponse          `json:"suggestions,omitempty"`
}

func NewAvailabilityResponse(a *booking.Availability) AvailabilityResponse {
	resp := AvailabilityResponse{Available: a.Available}
	for _, c := range a.Conflicts {
		resp.Conflicts = append(resp.Conflicts, ConflictEntryResponse{
			ID:        c.ID,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
			Purpose:   c.Purpose,
		})
	}
	for _, s := range a.Suggestions {
		resp.Suggestions = append(resp.Suggestions, SlotResponse{StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return resp
}

type RescheduleBookingRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// Validate performs custom validation for RescheduleBookingRequest.
func (r *RescheduleBookingRequest) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return booking.ErrInvalidInterval
	}
	return nil
}

type ApproveBookingRequest struct {
	ApprovedBy string `json:"approved_by" binding:"required"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}
