package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"mailpress/internal/auth"
	apperrors "mailpress/internal/errors"
	"mailpress/internal/middleware"
	"mailpress/internal/repository"
	"mailpress/internal/service"
)

// RequestContract is the "default" serializer side of a resource: a
// bindable, validatable struct that exposes its declared fields as service
// data. Unknown JSON fields are ignored by binding, never rejected.
type RequestContract interface {
	Payload() service.Fields
}

// Hooks are the per-entity override points of the generic resource
// controller. Nil entries fall back to the default behavior.
type Hooks[T any] struct {
	// ListFilter contributes extra filter terms to the list query, on top
	// of the ownership filter.
	ListFilter func(c echo.Context, claims *auth.Claims) repository.Filter
	// Fetch replaces the fetch-by-id lookup.
	Fetch func(ctx context.Context, id string) (*T, error)
	// Save replaces the create call.
	Save func(c echo.Context, data service.Fields, claims *auth.Claims) (*T, error)
	// Update replaces the update call.
	Update func(c echo.Context, id string, data service.Fields, claims *auth.Claims) (*T, error)
}

// Resource implements generic list/get/create/update/delete HTTP semantics
// for one entity type. The request contract validates inbound payloads, the
// respond function controls outbound field visibility, and the owner
// accessor drives the per-object authorization check.
type Resource[T any] struct {
	svc        *service.Service[T]
	newRequest func() RequestContract
	respond    func(entity *T) interface{}
	owner      func(entity *T) (ownerID, pk string)
	hooks      Hooks[T]
}

// NewResource creates a resource controller from a service, a serializer
// pair and a hook table.
func NewResource[T any](
	svc *service.Service[T],
	newRequest func() RequestContract,
	respond func(entity *T) interface{},
	owner func(entity *T) (ownerID, pk string),
	hooks Hooks[T],
) *Resource[T] {
	return &Resource[T]{
		svc:        svc,
		newRequest: newRequest,
		respond:    respond,
		owner:      owner,
		hooks:      hooks,
	}
}

// List returns the caller's resources wrapped in a data envelope.
func (r *Resource[T]) List(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return apperrors.MapToHTTP(apperrors.ErrUnauthorized)
	}
	filter := repository.Filter{"user_id": claims.ID}
	if r.hooks.ListFilter != nil {
		for key, value := range r.hooks.ListFilter(c, claims) {
			filter[key] = value
		}
	}

	entities, err := r.svc.Find(c.Request().Context(), filter)
	if err != nil {
		return apperrors.MapToHTTP(err)
	}

	items := make([]interface{}, 0, len(entities))
	for i := range entities {
		items = append(items, r.respond(&entities[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": items})
}

// Get returns a single resource after the ownership check.
func (r *Resource[T]) Get(c echo.Context) error {
	entity, err := r.fetch(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.MapToHTTP(err)
	}
	if err := r.authorize(entity, middleware.ClaimsFrom(c)); err != nil {
		return apperrors.MapToHTTP(err)
	}
	return c.JSON(http.StatusOK, r.respond(entity))
}

// Create validates the payload and delegates to the save hook.
func (r *Resource[T]) Create(c echo.Context) error {
	data, err := r.decode(c)
	if err != nil {
		return apperrors.MapToHTTP(err)
	}

	claims := middleware.ClaimsFrom(c)
	var entity *T
	if r.hooks.Save != nil {
		entity, err = r.hooks.Save(c, data, claims)
	} else {
		entity, err = r.svc.Create(c.Request().Context(), data)
	}
	if err != nil {
		return apperrors.MapToHTTP(err)
	}
	return c.JSON(http.StatusOK, r.respond(entity))
}

// Update fetches and ownership-checks the resource first, then validates
// the payload and delegates to the update hook.
func (r *Resource[T]) Update(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	id := c.Param("id")

	entity, err := r.fetch(c.Request().Context(), id)
	if err != nil {
		return apperrors.MapToHTTP(err)
	}
	if err := r.authorize(entity, claims); err != nil {
		return apperrors.MapToHTTP(err)
	}

	data, err := r.decode(c)
	if err != nil {
		return apperrors.MapToHTTP(err)
	}

	if r.hooks.Update != nil {
		entity, err = r.hooks.Update(c, id, data, claims)
	} else {
		entity, err = r.svc.Update(c.Request().Context(), id, data)
	}
	if err != nil {
		return apperrors.MapToHTTP(err)
	}
	return c.JSON(http.StatusOK, r.respond(entity))
}

// Delete fetches and ownership-checks the resource, then soft-deletes it.
// The record is never removed physically.
func (r *Resource[T]) Delete(c echo.Context) error {
	id := c.Param("id")

	entity, err := r.fetch(c.Request().Context(), id)
	if err != nil {
		return apperrors.MapToHTTP(err)
	}
	if err := r.authorize(entity, middleware.ClaimsFrom(c)); err != nil {
		return apperrors.MapToHTTP(err)
	}

	if _, err := r.svc.Update(c.Request().Context(), id, service.Fields{"deleted": true}); err != nil {
		return apperrors.MapToHTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "successful"})
}

func (r *Resource[T]) fetch(ctx context.Context, id string) (*T, error) {
	if r.hooks.Fetch != nil {
		return r.hooks.Fetch(ctx, id)
	}
	return r.svc.Get(ctx, id)
}

// authorize rejects callers that own neither the object nor its identity.
func (r *Resource[T]) authorize(entity *T, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.ErrUnauthorized
	}
	ownerID, pk := r.owner(entity)
	if (ownerID != "" && ownerID == claims.ID) || (pk != "" && pk == claims.ID) {
		return nil
	}
	return apperrors.ErrUnauthorized
}

func (r *Resource[T]) decode(c echo.Context) (service.Fields, error) {
	req := r.newRequest()
	if err := c.Bind(req); err != nil {
		return nil, apperrors.NewValidationError("_schema", "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return nil, apperrors.FromValidator(err)
	}
	return req.Payload(), nil
}
