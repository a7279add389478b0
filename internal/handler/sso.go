package handler

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/advenue/foodadmin/internal/config"
	"github.com/advenue/foodadmin/internal/repository"
	"github.com/advenue/foodadmin/internal/session"
	"github.com/advenue/foodadmin/internal/utils"
)

// ssoProvider is the issuer recorded on auto-provisioned accounts.
const ssoProvider = "advenue"

// SSOHandler implements the single-sign-on bridge. It trusts an
// externally signed assertion, provisions the account on first contact
// and establishes a dashboard session. Every failure path collapses to
// a login redirect for the caller; the reasons go to the log only.
type SSOHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions *session.Manager
	Log      *zap.Logger
}

func NewSSOHandler(cfg config.Config, u *repository.UserRepo, s *session.Manager, log *zap.Logger) *SSOHandler {
	return &SSOHandler{Cfg: cfg, Users: u, Sessions: s, Log: log}
}

// Login handles GET /sso?token=... — it never renders anything,
// every outcome is a redirect.
func (h *SSOHandler) Login(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.Redirect(http.StatusFound, "/login")
	}

	pemBytes, err := os.ReadFile(h.Cfg.SSOPublicKeyPath)
	if err != nil {
		h.Log.Warn("sso: public key unavailable", zap.String("path", h.Cfg.SSOPublicKeyPath), zap.Error(err))
		return c.Redirect(http.StatusFound, "/login")
	}
	key, err := utils.ParseSSOPublicKey(pemBytes)
	if err != nil {
		h.Log.Warn("sso: bad public key", zap.Error(err))
		return c.Redirect(http.StatusFound, "/login")
	}

	claims, err := utils.VerifySSOToken(key, token)
	if err != nil {
		if err == utils.ErrSSOTokenExpired {
			// Expired assertions get an explanation; nothing about the
			// account is touched.
			h.Sessions.Flash(c, "error", "SSO token has expired")
			return c.Redirect(http.StatusFound, "/login")
		}
		h.Log.Warn("sso: token verification failed", zap.Error(err))
		return c.Redirect(http.StatusFound, "/login")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.findOrCreate(ctx, claims)
	if err != nil {
		h.Log.Error("sso: provisioning failed", zap.String("email", claims.Email), zap.Error(err))
		return c.Redirect(http.StatusFound, "/login")
	}

	if err := h.Sessions.Login(c, uid); err != nil {
		h.Log.Error("sso: session start failed", zap.Error(err))
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.Redirect(http.StatusFound, h.Cfg.SSORedirectPath)
}

// findOrCreate resolves the assertion's email to a local account,
// provisioning one on first contact: active, pre-verified, random
// unusable password, external provider recorded.
func (h *SSOHandler) findOrCreate(ctx context.Context, claims *utils.SSOClaims) (uint64, error) {
	u, err := h.Users.GetByEmail(ctx, claims.Email)
	if err == nil {
		return u.ID, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	username := claims.Username
	if username == "" {
		username = claims.Email
	}
	name := claims.Name
	if name == "" {
		name = username
	}
	hash, err := utils.RandomPasswordHash(h.Cfg.BcryptCost)
	if err != nil {
		return 0, err
	}

	uid, err := h.Users.CreateSSO(ctx, name, claims.Email, username, hash, ssoProvider, "")
	if err == repository.ErrEmailExists {
		// Lost a race with a concurrent first contact; the account
		// exists now.
		if u, err := h.Users.GetByEmail(ctx, claims.Email); err == nil {
			return u.ID, nil
		}
		return 0, err
	}
	return uid, err
}
