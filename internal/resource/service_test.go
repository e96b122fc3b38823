package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	resources map[string]*Resource
	nextID    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{resources: make(map[string]*Resource)}
}

func (r *fakeRepo) Create(ctx context.Context, res *Resource) error {
	r.nextID++
	res.ID = string(rune('a' + r.nextID))
	cp := *res
	r.resources[res.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Resource, error) {
	res, ok := r.resources[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Resource, int, error) {
	var out []*Resource
	for _, res := range r.resources {
		cp := *res
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, res *Resource) error {
	if _, ok := r.resources[res.ID]; !ok {
		return ErrNotFound
	}
	cp := *res
	r.resources[res.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.resources[id]; !ok {
		return ErrNotFound
	}
	delete(r.resources, id)
	return nil
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid resource starts available", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		res, err := svc.Create(ctx, CreateRequest{Name: "Auditorium", Type: "hall", Capacity: 300})
		require.NoError(t, err)
		assert.Equal(t, TypeHall, res.Type)
		assert.True(t, res.IsAvailable)
		assert.False(t, res.AutoApprove)
	})

	t.Run("empty name", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.Create(ctx, CreateRequest{Name: "   ", Type: "room", Capacity: 10})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("unknown type", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.Create(ctx, CreateRequest{Name: "Pool", Type: "pool", Capacity: 10})
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("non-positive capacity", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.Create(ctx, CreateRequest{Name: "Room 1", Type: "room", Capacity: 0})
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	res, err := svc.Create(ctx, CreateRequest{Name: "Lab A", Type: "lab", Capacity: 20})
	require.NoError(t, err)

	t.Run("kill-switch can be flipped", func(t *testing.T) {
		off := false
		updated, err := svc.Update(ctx, res.ID, UpdateRequest{IsAvailable: &off})
		require.NoError(t, err)
		assert.False(t, updated.IsAvailable)
	})

	t.Run("auto-approve can be enabled", func(t *testing.T) {
		on := true
		updated, err := svc.Update(ctx, res.ID, UpdateRequest{AutoApprove: &on})
		require.NoError(t, err)
		assert.True(t, updated.AutoApprove)
	})

	t.Run("unknown id", func(t *testing.T) {
		name := "X"
		_, err := svc.Update(ctx, "missing", UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
