package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/advenue/foodadmin/internal/config"
	"github.com/advenue/foodadmin/internal/repository"
	"github.com/advenue/foodadmin/internal/utils"
)

// tokenTTL is the fixed lifetime of an issued API token.
const tokenTTL = 24 * time.Hour

// fullAccess is the ability list granted to every issued token.
const fullAccess = `["*"]`

// AuthHandler bundles dependencies for the token issuance endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

type apiLoginReq struct {
	ClientID     string `json:"client_id" form:"client_id"`
	ClientSecret string `json:"client_secret" form:"client_secret"`
}

// Login handles POST /v1/login. It verifies the client secret against
// the stored hash, derives a device fingerprint from the request
// metadata, prunes expired tokens for the same device label and issues
// a fresh 24-hour token. Unknown account and wrong secret produce the
// same 401 on purpose.
func (h *AuthHandler) Login(c echo.Context) error {
	var req apiLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}
	req.ClientID = strings.TrimSpace(req.ClientID)

	fe := fieldErrors{}
	if req.ClientID == "" {
		fe.add("client_id", "The client_id field is required.")
	} else if !validEmail(req.ClientID) {
		fe.add("client_id", "The client_id must be a valid email address.")
	}
	if req.ClientSecret == "" {
		fe.add("client_secret", "The client_secret field is required.")
	}
	if fe.any() {
		return validationFailed(c, fe)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.ClientID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.ClientSecret) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid credentials"})
	}

	// Device fingerprint over the four metadata values. Stable per
	// device, not secret.
	r := c.Request()
	fingerprint := utils.Fingerprint(
		r.UserAgent(),
		c.RealIP(),
		r.Header.Get("Accept-Language"),
		r.Header.Get("Sec-CH-UA-Platform"),
	)
	device := utils.DeviceName(r.UserAgent(), fingerprint)

	// Cleanup only: expired tokens under this device label. Live
	// tokens, and tokens for other devices, stay untouched.
	if err := h.Tokens.DeleteExpiredByName(ctx, u.ID, device); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "token cleanup failed"})
	}

	secret, err := utils.NewAPITokenSecret()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "issue token failed"})
	}
	expiresAt := time.Now().UTC().Add(tokenTTL)
	id, err := h.Tokens.Create(ctx, u.ID, device, secret.Hash, fullAccess, expiresAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "save token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"token":       utils.ComposeToken(id, secret.Raw), // plaintext exists only here
		"user":        u,
		"device":      device,
		"fingerprint": fingerprint,
		"expires_at":  expiresAt,
	})
}

// Logout handles POST /v1/logout. It revokes exactly the token that
// authenticated the request; other devices keep their sessions.
func (h *AuthHandler) Logout(c echo.Context) error {
	tokenID, ok := c.Get("token_id").(uint64)
	if !ok || tokenID == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Unauthenticated"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.Delete(ctx, tokenID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "logout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}
