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
	"github.com/advenue/foodadmin/internal/session"
	"github.com/advenue/foodadmin/internal/utils"
)

// AdminAuthHandler serves the dashboard's session login and logout.
type AdminAuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions *session.Manager
}

func NewAdminAuthHandler(cfg config.Config, u *repository.UserRepo, s *session.Manager) *AdminAuthHandler {
	return &AdminAuthHandler{Cfg: cfg, Users: u, Sessions: s}
}

// LoginForm handles GET /login: the login page view-model, carrying
// any flash left by a failed attempt or an SSO redirect.
func (h *AdminAuthHandler) LoginForm(c echo.Context) error {
	vm := echo.Map{}
	flash := echo.Map{}
	if msg := h.Sessions.TakeFlash(c, "error"); msg != "" {
		flash["error"] = msg
	}
	if msg := h.Sessions.TakeFlash(c, "success"); msg != "" {
		flash["success"] = msg
	}
	if len(flash) > 0 {
		vm["flash"] = flash
	}
	return c.JSON(http.StatusOK, vm)
}

type sessionLoginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Login handles POST /login. Failed attempts flash a generic message
// and bounce back to the form; the reason is never specified.
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var req sessionLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		h.Sessions.Flash(c, "error", "These credentials do not match our records.")
		return c.Redirect(http.StatusFound, "/login")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			h.Sessions.Flash(c, "error", "These credentials do not match our records.")
			return c.Redirect(http.StatusFound, "/login")
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		h.Sessions.Flash(c, "error", "These credentials do not match our records.")
		return c.Redirect(http.StatusFound, "/login")
	}

	if err := h.Sessions.Login(c, u.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	return c.Redirect(http.StatusFound, h.Cfg.SSORedirectPath)
}

// Logout handles POST /logout and destroys the dashboard session.
func (h *AdminAuthHandler) Logout(c echo.Context) error {
	_ = h.Sessions.Logout(c)
	return c.Redirect(http.StatusFound, "/login")
}

// Dashboard handles GET /dashboard, the landing page after login.
func (h *AdminAuthHandler) Dashboard(c echo.Context) error {
	uid, _ := c.Get("session_user_id").(uint64)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}
