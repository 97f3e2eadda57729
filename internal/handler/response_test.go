package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "schoolapi/internal/errors"
)

func TestErrorResponse(t *testing.T) {
	he := errorResponse(apperrors.ErrUsernameTaken)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, apperrors.ErrorResponse{Error: "username taken", Code: "USERNAME_TAKEN"}, he.Message)
	assert.Nil(t, he.Internal)

	cause := errors.New("dial tcp: connection refused")
	he = errorResponse(cause)
	assert.Equal(t, http.StatusInternalServerError, he.Code)
	assert.Equal(t, apperrors.ErrorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"}, he.Message)
	assert.Equal(t, cause, he.Internal)
}

func TestValidationMessage(t *testing.T) {
	type sample struct {
		Name  string `validate:"required"`
		Email string `validate:"email"`
		Code  string `validate:"max=3"`
	}
	v := validator.New()

	assert.Equal(t, "Name is required", validationMessage(v.Struct(sample{Email: "a@b.co"})))
	assert.Equal(t, "Email must be a valid email address", validationMessage(v.Struct(sample{Name: "x", Email: "nope"})))
	assert.Equal(t, "Code must be at most 3 characters", validationMessage(v.Struct(sample{Name: "x", Email: "a@b.co", Code: "ABCD"})))
	assert.Equal(t, "plain", validationMessage(errors.New("plain")))
}

func TestSessionToken(t *testing.T) {
	tests := []struct {
		name   string
		target string
		header string
		want   string
	}{
		{name: "bearer header", target: "/", header: "Bearer abc", want: "abc"},
		{name: "lowercase scheme", target: "/", header: "bearer abc", want: "abc"},
		{name: "query parameter", target: "/?token=xyz", want: "xyz"},
		{name: "header wins over query", target: "/?token=xyz", header: "Bearer abc", want: "abc"},
		{name: "other scheme falls back to query", target: "/?token=xyz", header: "Basic abc", want: "xyz"},
		{name: "nothing", target: "/", want: ""},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())
			assert.Equal(t, tt.want, sessionToken(c))
		})
	}
}

func TestPathAndQueryIDs(t *testing.T) {
	e := echo.New()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?class_id=4", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("12")

	id, err := pathID(c)
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	classID, err := queryID(c, "class_id")
	require.NoError(t, err)
	assert.Equal(t, uint(4), *classID)

	missing, err := queryID(c, "teacher_id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	c.SetParamValues("0")
	_, err = pathID(c)
	assert.Error(t, err)

	bad := e.NewContext(httptest.NewRequest(http.MethodGet, "/?class_id=x", nil), httptest.NewRecorder())
	_, err = queryID(bad, "class_id")
	assert.Error(t, err)
}
