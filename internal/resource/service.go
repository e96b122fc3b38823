package resource

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name        string
	Type        string
	Capacity    int
	AutoApprove bool
}

type UpdateRequest struct {
	Name        *string
	Capacity    *int
	AutoApprove *bool
	IsAvailable *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Resource, error)
	GetByID(ctx context.Context, id string) (*Resource, error)
	List(ctx context.Context, filter Filter) ([]*Resource, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Resource, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Resource, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	validType := false
	for _, t := range ValidTypes {
		if Type(req.Type) == t {
			validType = true
			break
		}
	}
	if !validType {
		return nil, ErrInvalidType
	}

	res := &Resource{
		Name:        req.Name,
		Type:        Type(req.Type),
		Capacity:    req.Capacity,
		AutoApprove: req.AutoApprove,
		IsAvailable: true,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Resource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Resource, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Resource, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		res.Name = *req.Name
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		res.Capacity = *req.Capacity
	}
	if req.AutoApprove != nil {
		res.AutoApprove = *req.AutoApprove
	}
	if req.IsAvailable != nil {
		res.IsAvailable = *req.IsAvailable
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
