package resource

import (
	"net/http"
	"time"

	"github.com/campuskit/venue-booking-engine/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "resource not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidType     = apperror.New(http.StatusBadRequest, "invalid resource type")
	ErrInvalidCapacity = apperror.New(http.StatusBadRequest, "capacity must be positive")
)

type Type string

const (
	TypeRoom      Type = "room"
	TypeHall      Type = "hall"
	TypeLab       Type = "lab"
	TypeEquipment Type = "equipment"
)

// ValidTypes enumerates the accepted resource types.
var ValidTypes = []Type{TypeRoom, TypeHall, TypeLab, TypeEquipment}

// Resource represents a bookable asset (e.g., Main Hall, Physics Lab 2).
type Resource struct {
	ID       string
	Name     string
	Type     Type
	Capacity int

	// AutoApprove makes new bookings start out approved instead of pending.
	AutoApprove bool

	// IsAvailable is the kill-switch: when false, no new bookings are admitted
	// regardless of interval conflicts.
	IsAvailable bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing resources.
type Filter struct {
	Type      string
	Available *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
