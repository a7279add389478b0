package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the admin session cookie.
const CookieName = "admin_session"

// flashTTL bounds how long an unread flash message survives.
const flashTTL = 10 * time.Minute

// Manager ties the session cookie to the backing store. It also
// carries the one-shot flash messages the admin UI shows after
// redirects.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// sessionID returns the request's session id, minting a new cookie
// when none exists yet. Flash messages need an id before login, so
// anonymous requests get one too.
func (m *Manager) sessionID(c echo.Context) (string, error) {
	if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
		return ck.Value, nil
	}
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// Login binds the session id to a user.
func (m *Manager) Login(c echo.Context, userID uint64) error {
	id, err := m.sessionID(c)
	if err != nil {
		return err
	}
	return m.store.Set(c.Request().Context(), "user:"+id, strconv.FormatUint(userID, 10), m.ttl)
}

// UserID resolves the authenticated user for the request, if any.
func (m *Manager) UserID(c echo.Context) (uint64, bool) {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return 0, false
	}
	v, err := m.store.Get(c.Request().Context(), "user:"+ck.Value)
	if err != nil {
		return 0, false
	}
	uid, err := strconv.ParseUint(v, 10, 64)
	if err != nil || uid == 0 {
		return 0, false
	}
	return uid, true
}

// Logout drops the session binding. The cookie itself is cleared too.
func (m *Manager) Logout(c echo.Context) error {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return m.store.Delete(c.Request().Context(), "user:"+ck.Value)
}

// Flash stores a one-shot message under the request's session.
func (m *Manager) Flash(c echo.Context, key, message string) {
	id, err := m.sessionID(c)
	if err != nil {
		return
	}
	_ = m.store.Set(c.Request().Context(), "flash:"+id+":"+key, message, flashTTL)
}

// TakeFlash reads and consumes a flash message. Empty when none is set.
func (m *Manager) TakeFlash(c echo.Context, key string) string {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return ""
	}
	k := "flash:" + ck.Value + ":" + key
	v, err := m.store.Get(c.Request().Context(), k)
	if err != nil {
		return ""
	}
	_ = m.store.Delete(c.Request().Context(), k)
	return v
}
