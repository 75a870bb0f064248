package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LookupRepository is the shared contract for the four directory tables
// (sites, locations, departments, categories) — they all have the same CRUD
// shape, so one generic implementation serves all of them.
type LookupRepository[T any] interface {
	Create(ctx context.Context, m *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context, includeInactive bool) ([]T, error)
	Update(ctx context.Context, m *T) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type lookupRepo[T any] struct{ db *gorm.DB }

func NewLookupRepository[T any](db *gorm.DB) LookupRepository[T] { return &lookupRepo[T]{db: db} }

func (r *lookupRepo[T]) Create(ctx context.Context, m *T) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *lookupRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var m T
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *lookupRepo[T]) List(ctx context.Context, includeInactive bool) ([]T, error) {
	var items []T
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *lookupRepo[T]) Update(ctx context.Context, m *T) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *lookupRepo[T]) Deactivate(ctx context.Context, id uuid.UUID) error {
	var m T
	return r.db.WithContext(ctx).Model(&m).Where("id = ?", id).Update("active", false).Error
}
