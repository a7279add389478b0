package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func postLogin(t *testing.T, h *AuthHandler, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Login(c))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

// Validation runs before any account lookup, so these cases exercise
// the handler without a database.

func TestLoginMissingFields(t *testing.T) {
	h := &AuthHandler{}
	rec, env := postLogin(t, h, `{}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Errors, "client_id")
	assert.Contains(t, env.Errors, "client_secret")
}

func TestLoginClientIDMustBeEmail(t *testing.T) {
	h := &AuthHandler{}
	rec, env := postLogin(t, h, `{"client_id":"not-an-email","client_secret":"s3cret"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, env.Errors, "client_id")
	assert.Equal(t, "The client_id must be a valid email address.", env.Errors["client_id"][0])
	assert.NotContains(t, env.Errors, "client_secret")
}

func TestLogoutWithoutTokenContext(t *testing.T) {
	h := &AuthHandler{}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
