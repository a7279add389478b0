package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "k", "v", -time.Second))
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNoSession)
}

// withCookies builds a context whose request carries the cookies a
// previous response set.
func withCookies(e *echo.Echo, rec *httptest.ResponseRecorder) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		req.AddCookie(ck)
	}
	next := httptest.NewRecorder()
	return e.NewContext(req, next), next
}

func TestManagerLoginRoundTrip(t *testing.T) {
	e := echo.New()
	m := NewManager(NewMemoryStore(), time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, m.Login(c, 42))

	c2, _ := withCookies(e, rec)
	uid, ok := m.UserID(c2)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), uid)
}

func TestManagerUserIDWithoutCookie(t *testing.T) {
	e := echo.New()
	m := NewManager(NewMemoryStore(), time.Hour)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := m.UserID(c)
	assert.False(t, ok)
}

func TestManagerLogout(t *testing.T) {
	e := echo.New()
	m := NewManager(NewMemoryStore(), time.Hour)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec)
	require.NoError(t, m.Login(c, 7))

	c2, _ := withCookies(e, rec)
	require.NoError(t, m.Logout(c2))

	c3, _ := withCookies(e, rec)
	_, ok := m.UserID(c3)
	assert.False(t, ok)
}

func TestFlashIsOneShot(t *testing.T) {
	e := echo.New()
	m := NewManager(NewMemoryStore(), time.Hour)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/users", nil), rec)
	m.Flash(c, "success", "User created successfully")

	c2, _ := withCookies(e, rec)
	assert.Equal(t, "User created successfully", m.TakeFlash(c2, "success"))

	c3, _ := withCookies(e, rec)
	assert.Empty(t, m.TakeFlash(c3, "success"))
}

func TestFlashBeforeLogin(t *testing.T) {
	// The SSO bridge flashes an expiry message for anonymous visitors;
	// a session cookie is minted on demand.
	e := echo.New()
	m := NewManager(NewMemoryStore(), time.Hour)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/sso", nil), rec)
	m.Flash(c, "error", "SSO token has expired")

	require.NotEmpty(t, rec.Result().Cookies())
	c2, _ := withCookies(e, rec)
	assert.Equal(t, "SSO token has expired", m.TakeFlash(c2, "error"))
}
