package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"mailpress/internal/auth"
	apperrors "mailpress/internal/errors"
	"mailpress/internal/model"
	"mailpress/internal/repository"
	"mailpress/internal/service"
)

// TemplateRequest is the default contract for template writes.
type TemplateRequest struct {
	TemplateName string `json:"template_name" validate:"required"`
	Body         string `json:"body" validate:"required"`
	Subject      string `json:"subject" validate:"required"`
}

// Payload implements RequestContract.
func (r *TemplateRequest) Payload() service.Fields {
	return service.Fields{
		"template_name": r.TemplateName,
		"body":          r.Body,
		"subject":       r.Subject,
	}
}

// TemplateResponse is the response contract for templates. The stored name
// field travels as template_name on the wire.
type TemplateResponse struct {
	PK           string    `json:"pk"`
	TemplateName string    `json:"template_name"`
	Body         string    `json:"body"`
	Subject      string    `json:"subject"`
	UserID       string    `json:"user_id"`
	DateCreated  time.Time `json:"date_created"`
	LastUpdated  time.Time `json:"last_updated"`
}

func templateResponse(t *model.Template) TemplateResponse {
	return TemplateResponse{
		PK:           t.ID.String(),
		TemplateName: t.Name,
		Body:         t.Body,
		Subject:      t.Subject,
		UserID:       t.UserID,
		DateCreated:  t.DateCreated,
		LastUpdated:  t.LastUpdated,
	}
}

// TemplateHandler exposes the ownership-scoped template CRUD resource.
type TemplateHandler struct {
	resource *Resource[model.Template]
}

// NewTemplateHandler creates the template handler. Soft-deleted templates
// are filtered out of both the list query and the fetch-by-id lookup, and
// the owner is always forced from the caller's identity on create.
func NewTemplateHandler(templates *service.Service[model.Template]) *TemplateHandler {
	resource := NewResource(templates,
		func() RequestContract { return new(TemplateRequest) },
		func(t *model.Template) interface{} { return templateResponse(t) },
		func(t *model.Template) (string, string) { return t.UserID, t.ID.String() },
		Hooks[model.Template]{
			ListFilter: func(c echo.Context, _ *auth.Claims) repository.Filter {
				return repository.Filter{"deleted": false}
			},
			Fetch: func(ctx context.Context, id string) (*model.Template, error) {
				entity, err := templates.FindOne(ctx, repository.Filter{"id": id, "deleted": false})
				if err != nil {
					return nil, err
				}
				if entity == nil {
					return nil, apperrors.ErrNotFound
				}
				return entity, nil
			},
			Save: func(c echo.Context, data service.Fields, claims *auth.Claims) (*model.Template, error) {
				data["user_id"] = claims.ID
				data["name"] = data["template_name"]
				delete(data, "template_name")
				return templates.Create(c.Request().Context(), data)
			},
		},
	)
	return &TemplateHandler{resource: resource}
}

// List godoc
// @Summary List the caller's templates
// @Tags templates
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /template [get]
func (h *TemplateHandler) List(c echo.Context) error {
	return h.resource.List(c)
}

// Get godoc
// @Summary Get one template by id
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} TemplateResponse
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /template/{id} [get]
func (h *TemplateHandler) Get(c echo.Context) error {
	return h.resource.Get(c)
}

// Create godoc
// @Summary Create a template owned by the caller
// @Tags templates
// @Accept json
// @Produce json
// @Param request body TemplateRequest true "Template data"
// @Success 200 {object} TemplateResponse
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /template [post]
func (h *TemplateHandler) Create(c echo.Context) error {
	return h.resource.Create(c)
}

// Update godoc
// @Summary Update a template after the ownership check
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param request body TemplateRequest true "Template data"
// @Success 200 {object} TemplateResponse
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /template/{id} [put]
func (h *TemplateHandler) Update(c echo.Context) error {
	return h.resource.Update(c)
}

// Delete godoc
// @Summary Soft-delete a template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /template/{id} [delete]
func (h *TemplateHandler) Delete(c echo.Context) error {
	return h.resource.Delete(c)
}
