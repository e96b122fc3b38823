package http

import (
	"time"

	"github.com/campuskit/venue-booking-engine/internal/pkg/request"
	"github.com/campuskit/venue-booking-engine/internal/resource"
)

type ResourceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Capacity    int       `json:"capacity"`
	AutoApprove bool      `json:"auto_approve"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewResponse(r *resource.Resource) ResourceResponse {
	return ResourceResponse{
		ID:          r.ID,
		Name:        r.Name,
		Type:        string(r.Type),
		Capacity:    r.Capacity,
		AutoApprove: r.AutoApprove,
		IsAvailable: r.IsAvailable,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=room hall lab equipment"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
	AutoApprove bool   `json:"auto_approve"`
}

type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty"`
	Capacity    *int    `json:"capacity" binding:"omitempty,min=1"`
	AutoApprove *bool   `json:"auto_approve"`
	IsAvailable *bool   `json:"is_available"`
}

type ListResourcesRequest struct {
	request.ListParams
	Type      string `form:"type" binding:"omitempty,oneof=room hall lab equipment"`
	Available *bool  `form:"available"`
}
