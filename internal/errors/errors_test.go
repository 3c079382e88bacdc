package errors

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestMapToHTTP(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody interface{}
	}{
		{
			name:     "not found",
			err:      ErrNotFound,
			wantCode: http.StatusConflict,
			wantBody: map[string]string{"desc": "requested resource doesn't exist"},
		},
		{
			name:     "unauthorized",
			err:      ErrUnauthorized,
			wantCode: http.StatusUnauthorized,
			wantBody: map[string]string{"desc": "unauthorized"},
		},
		{
			name:     "invalid password",
			err:      ErrInvalidPassword,
			wantCode: http.StatusConflict,
			wantBody: map[string]string{"err": "invalid password supplied"},
		},
		{
			name:     "validation",
			err:      NewValidationError("email", "invalid email"),
			wantCode: http.StatusConflict,
			wantBody: map[string]string{"email": "invalid email"},
		},
		{
			name:     "unexpected",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantBody: map[string]string{"desc": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			he := MapToHTTP(tt.err)
			assert.Equal(t, tt.wantCode, he.Code)
			assert.Equal(t, tt.wantBody, he.Message)
		})
	}
}

func TestFromValidator(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	payload := struct {
		Email string `json:"email" validate:"required,email"`
		Body  string `json:"body" validate:"required"`
	}{Email: "not-an-email"}

	err := FromValidator(v.Struct(payload))

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid email address", verr.Fields["email"])
	assert.Equal(t, "this field is required", verr.Fields["body"])
}

func TestFromValidator_NonValidatorError(t *testing.T) {
	err := FromValidator(errors.New("cannot unmarshal"))

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "cannot unmarshal", verr.Fields["_schema"])
}

func TestValidationError_MessageIsStable(t *testing.T) {
	verr := &ValidationError{Fields: map[string]string{
		"b": "second",
		"a": "first",
	}}
	assert.Equal(t, "validation failed: a: first; b: second", verr.Error())
}
