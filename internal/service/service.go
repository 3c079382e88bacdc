package service

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "mailpress/internal/errors"
	"mailpress/internal/repository"
)

// Fields is caller-supplied data for create and update operations.
type Fields map[string]interface{}

// Setter assigns one writable field on T. Each entity declares a static
// table of setters; keys without a setter are silently dropped, which keeps
// undeclared attributes out of reach of request payloads.
type Setter[T any] func(entity *T, value interface{})

// managedKeys are server-owned and stripped from caller data before any
// field is copied.
var managedKeys = []string{"pk", "id", "date_created", "last_updated"}

// Service implements generic CRUD semantics for one entity type on top of a
// document-style collection: field whitelisting, partial update and the
// numeric rounding policy.
type Service[T any] struct {
	collection repository.Collection[T]
	fields     map[string]Setter[T]
	touch      func(entity *T, now time.Time)
}

// NewService creates a generic service. touch refreshes the entity's
// last-updated timestamp and may be nil for entities without one.
func NewService[T any](collection repository.Collection[T], fields map[string]Setter[T], touch func(*T, time.Time)) *Service[T] {
	return &Service[T]{collection: collection, fields: fields, touch: touch}
}

// Get returns the document with the given id, or ErrNotFound. An id that is
// not a valid UUID cannot name any stored document and resolves to not
// found as well.
func (s *Service[T]) Get(ctx context.Context, id string) (*T, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	entity, err := s.collection.FindByID(ctx, uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		log.Printf("service: get %s: %v", id, err)
		return nil, err
	}
	return entity, nil
}

// FindOne returns the first document matching filter, or (nil, nil) when
// there is none.
func (s *Service[T]) FindOne(ctx context.Context, filter repository.Filter) (*T, error) {
	entity, err := s.collection.FindOne(ctx, filter)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("service: find one: %v", err)
		return nil, err
	}
	return entity, nil
}

// Find returns every document matching filter.
func (s *Service[T]) Find(ctx context.Context, filter repository.Filter) ([]T, error) {
	entities, err := s.collection.FindAll(ctx, filter)
	if err != nil {
		log.Printf("service: find: %v", err)
		return nil, err
	}
	return entities, nil
}

// Count returns the number of documents matching filter.
func (s *Service[T]) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	return s.collection.Count(ctx, filter)
}

// Create instantiates a new document, copies the declared fields from data
// onto it and persists it. Server-managed keys and keys without a declared
// setter are dropped, not rejected.
func (s *Service[T]) Create(ctx context.Context, data Fields) (*T, error) {
	entity := new(T)
	s.populate(entity, clean(data))
	if err := s.collection.Save(ctx, entity); err != nil {
		log.Printf("service: create: %v", err)
		return nil, err
	}
	return entity, nil
}

// Update resolves the existing document, copies the declared fields from
// data onto it, refreshes last_updated and persists it. Returns ErrNotFound
// when id does not resolve.
func (s *Service[T]) Update(ctx context.Context, id string, data Fields) (*T, error) {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.populate(entity, clean(data))
	if s.touch != nil {
		s.touch(entity, time.Now().UTC())
	}
	if err := s.collection.Save(ctx, entity); err != nil {
		log.Printf("service: update %s: %v", id, err)
		return nil, err
	}
	return entity, nil
}

func (s *Service[T]) populate(entity *T, data Fields) {
	for key, value := range data {
		set, ok := s.fields[key]
		if !ok {
			continue
		}
		set(entity, normalize(value))
	}
}

// clean returns a copy of data without the server-managed keys.
func clean(data Fields) Fields {
	cleaned := make(Fields, len(data))
	for key, value := range data {
		cleaned[key] = value
	}
	for _, key := range managedKeys {
		delete(cleaned, key)
	}
	return cleaned
}

// normalize applies the numeric field policy: floating-point values are
// rounded to two decimal places before assignment.
func normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case float64:
		return roundUp(v)
	case float32:
		return roundUp(float64(v))
	}
	return value
}

// roundUp rounds n up to the nearest hundredth, so 1.005 stores as 1.01.
func roundUp(n float64) float64 {
	return math.Ceil(n*100) / 100
}
