package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"mailpress/internal/auth"
	"mailpress/internal/handler"
	"mailpress/internal/model"
	"mailpress/internal/repository"
	"mailpress/internal/router"
	"mailpress/internal/service"
)

// userStore is an in-memory Collection[model.User].
type userStore struct {
	docs map[uuid.UUID]model.User
}

func newUserStore() *userStore {
	return &userStore{docs: map[uuid.UUID]model.User{}}
}

func userMatches(doc model.User, filter repository.Filter) bool {
	for key, value := range filter {
		switch key {
		case "id":
			if doc.ID.String() != value {
				return false
			}
		case "email":
			if doc.Email != value {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (s *userStore) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if doc, ok := s.docs[id]; ok {
		return &doc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *userStore) FindOne(_ context.Context, filter repository.Filter) (*model.User, error) {
	for _, doc := range s.docs {
		if userMatches(doc, filter) {
			matched := doc
			return &matched, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *userStore) FindAll(_ context.Context, filter repository.Filter) ([]model.User, error) {
	var out []model.User
	for _, doc := range s.docs {
		if userMatches(doc, filter) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *userStore) Save(_ context.Context, entity *model.User) error {
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	if entity.DateCreated.IsZero() {
		entity.DateCreated = time.Now().UTC()
	}
	if entity.LastUpdated.IsZero() {
		entity.LastUpdated = entity.DateCreated
	}
	s.docs[entity.ID] = *entity
	return nil
}

func (s *userStore) Delete(_ context.Context, entity *model.User) error {
	delete(s.docs, entity.ID)
	return nil
}

func (s *userStore) Count(_ context.Context, filter repository.Filter) (int64, error) {
	docs, _ := s.FindAll(context.Background(), filter)
	return int64(len(docs)), nil
}

// templateStore is an in-memory Collection[model.Template].
type templateStore struct {
	docs map[uuid.UUID]model.Template
}

func newTemplateStore() *templateStore {
	return &templateStore{docs: map[uuid.UUID]model.Template{}}
}

func templateMatches(doc model.Template, filter repository.Filter) bool {
	for key, value := range filter {
		switch key {
		case "id":
			if doc.ID.String() != value {
				return false
			}
		case "user_id":
			if doc.UserID != value {
				return false
			}
		case "deleted":
			if doc.Deleted != value {
				return false
			}
		case "name":
			if doc.Name != value {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (s *templateStore) FindByID(_ context.Context, id uuid.UUID) (*model.Template, error) {
	if doc, ok := s.docs[id]; ok {
		return &doc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *templateStore) FindOne(_ context.Context, filter repository.Filter) (*model.Template, error) {
	for _, doc := range s.docs {
		if templateMatches(doc, filter) {
			matched := doc
			return &matched, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *templateStore) FindAll(_ context.Context, filter repository.Filter) ([]model.Template, error) {
	var out []model.Template
	for _, doc := range s.docs {
		if templateMatches(doc, filter) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *templateStore) Save(_ context.Context, entity *model.Template) error {
	if entity.ID == uuid.Nil {
		entity.ID = uuid.New()
	}
	if entity.DateCreated.IsZero() {
		entity.DateCreated = time.Now().UTC()
	}
	if entity.LastUpdated.IsZero() {
		entity.LastUpdated = entity.DateCreated
	}
	s.docs[entity.ID] = *entity
	return nil
}

func (s *templateStore) Delete(_ context.Context, entity *model.Template) error {
	delete(s.docs, entity.ID)
	return nil
}

func (s *templateStore) Count(_ context.Context, filter repository.Filter) (int64, error) {
	docs, _ := s.FindAll(context.Background(), filter)
	return int64(len(docs)), nil
}

// testEnv runs the full HTTP surface against in-memory stores.
type testEnv struct {
	e         *echo.Echo
	users     *userStore
	templates *templateStore
	jwt       *auth.JWTService
}

func newTestEnv() *testEnv {
	users := newUserStore()
	templates := newTemplateStore()
	jwtService := auth.NewJWTService("test-secret", "HS256", 1)

	e := echo.New()
	router.Register(e,
		jwtService,
		handler.NewAuthHandler(service.NewUserService(users, jwtService)),
		handler.NewTemplateHandler(service.NewTemplateService(templates)),
		handler.NewHealthHandler(nil, nil),
	)
	return &testEnv{e: e, users: users, templates: templates, jwt: jwtService}
}

func (env *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// signUp registers and logs in a fresh account, returning its pk and token.
func (env *testEnv) signUp(t *testing.T, email string) (pk, token string) {
	t.Helper()

	rec := env.do(http.MethodPost, "/register", "", map[string]string{
		"email":      email,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "secret123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	pk, _ = decodeBody(t, rec)["pk"].(string)

	rec = env.do(http.MethodPost, "/login", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	token, _ = decodeBody(t, rec)["auth_token"].(string)

	assert.NotEmpty(t, pk)
	assert.NotEmpty(t, token)
	return pk, token
}
