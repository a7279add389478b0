package handler

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/advenue/foodadmin/internal/config"
	"github.com/advenue/foodadmin/internal/session"
	"github.com/advenue/foodadmin/internal/utils"
)

func writePublicKeyPEM(t *testing.T, dir string, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	path := filepath.Join(dir, "advenue.pem")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, pem.Encode(f, &pem.Block{Type: "PUBLIC KEY", Bytes: der}))
	return path
}

func signAssertion(t *testing.T, key *rsa.PrivateKey, email string, exp time.Time) string {
	t.Helper()
	claims := utils.SSOClaims{
		Email:    email,
		Username: "jdoe",
		Name:     "Jane Doe",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func newSSOHandler(keyPath string, sessions *session.Manager) *SSOHandler {
	cfg := config.Config{SSOPublicKeyPath: keyPath, SSORedirectPath: "/dashboard"}
	return NewSSOHandler(cfg, nil, sessions, zap.NewNop())
}

func getSSO(t *testing.T, h *SSOHandler, token string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	target := "/sso"
	if token != "" {
		target += "?token=" + token
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Login(e.NewContext(req, rec)))
	return rec
}

func TestSSOMissingTokenRedirectsToLogin(t *testing.T) {
	sessions := session.NewManager(session.NewMemoryStore(), time.Hour)
	h := newSSOHandler("irrelevant.pem", sessions)

	rec := getSSO(t, h, "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestSSOUnreadableKeyRedirectsToLogin(t *testing.T) {
	sessions := session.NewManager(session.NewMemoryStore(), time.Hour)
	h := newSSOHandler(filepath.Join(t.TempDir(), "absent.pem"), sessions)

	rec := getSSO(t, h, "whatever")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestSSOExpiredTokenRedirectsWithMessage(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyPath := writePublicKeyPEM(t, t.TempDir(), key)

	store := session.NewMemoryStore()
	sessions := session.NewManager(store, time.Hour)
	h := newSSOHandler(keyPath, sessions)

	token := signAssertion(t, key, "jane@example.com", time.Now().Add(-time.Hour))
	rec := getSSO(t, h, token)

	// An expired assertion never establishes a session; the visitor
	// lands on the login page with an explanation.
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	e := echo.New()
	followup := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, ck := range rec.Result().Cookies() {
		followup.AddCookie(ck)
	}
	c := e.NewContext(followup, httptest.NewRecorder())
	assert.Equal(t, "SSO token has expired", sessions.TakeFlash(c, "error"))

	_, ok := sessions.UserID(c)
	assert.False(t, ok)
}

func TestSSOBadSignatureRedirectsToLogin(t *testing.T) {
	trusted, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	rogue, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyPath := writePublicKeyPEM(t, t.TempDir(), trusted)

	sessions := session.NewManager(session.NewMemoryStore(), time.Hour)
	h := newSSOHandler(keyPath, sessions)

	token := signAssertion(t, rogue, "jane@example.com", time.Now().Add(time.Hour))
	rec := getSSO(t, h, token)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, rec.Result().Cookies(), "no session cookie for a rejected assertion")
}
