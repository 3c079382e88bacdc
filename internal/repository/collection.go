package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filter is a document-style equality query: column name to required value.
type Filter map[string]interface{}

// Collection defines generic persistence operations over one entity type.
// The store only needs to match flat equality filters and save or delete
// whole documents; everything richer lives in the service layer.
type Collection[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindOne(ctx context.Context, filter Filter) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

type gormCollection[T any] struct {
	db *gorm.DB
}

// NewCollection creates a gorm-backed collection for T.
func NewCollection[T any](db *gorm.DB) Collection[T] {
	return &gormCollection[T]{db: db}
}

// FindByID finds a single entity by primary key.
func (r *gormCollection[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindOne finds the first entity matching filter.
func (r *gormCollection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where(map[string]interface{}(filter)).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindAll finds every entity matching filter.
func (r *gormCollection[T]) FindAll(ctx context.Context, filter Filter) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Where(map[string]interface{}(filter)).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Save persists the entity, inserting or updating by primary key.
func (r *gormCollection[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete removes the entity physically. Soft deletion is a service-layer
// convention, not a store concern.
func (r *gormCollection[T]) Delete(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Delete(entity).Error
}

// Count returns the number of entities matching filter.
func (r *gormCollection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(new(T)).Where(map[string]interface{}(filter)).Count(&total).Error
	return total, err
}
