package service

import (
	"time"

	"mailpress/internal/model"
	"mailpress/internal/repository"
)

// templateFields is the declared writable surface of the Template entity.
// Inbound payloads use the template_name key, which has no setter here; the
// template resource renames it to name before create, so updates leave the
// stored name untouched.
var templateFields = map[string]Setter[model.Template]{
	"name": func(t *model.Template, v interface{}) {
		if s, ok := v.(string); ok {
			t.Name = s
		}
	},
	"body": func(t *model.Template, v interface{}) {
		if s, ok := v.(string); ok {
			t.Body = s
		}
	},
	"subject": func(t *model.Template, v interface{}) {
		if s, ok := v.(string); ok {
			t.Subject = s
		}
	},
	"user_id": func(t *model.Template, v interface{}) {
		if s, ok := v.(string); ok {
			t.UserID = s
		}
	},
	"deleted": func(t *model.Template, v interface{}) {
		if b, ok := v.(bool); ok {
			t.Deleted = b
		}
	},
}

// NewTemplateService creates the generic service instance for templates.
func NewTemplateService(collection repository.Collection[model.Template]) *Service[model.Template] {
	return NewService(collection, templateFields, func(t *model.Template, now time.Time) { t.LastUpdated = now })
}
