package handler

import (
	"context"
	"database/sql"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/advenue/foodadmin/internal/config"
	"github.com/advenue/foodadmin/internal/model"
	"github.com/advenue/foodadmin/internal/pagination"
	"github.com/advenue/foodadmin/internal/repository"
	"github.com/advenue/foodadmin/internal/session"
	"github.com/advenue/foodadmin/internal/utils"
)

// AdminUserHandler serves the dashboard's user management surface. The
// endpoints return JSON view-models consumed by the server-rendered
// pages; mutations redirect back with a flash banner, form-post style.
type AdminUserHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions *session.Manager
}

func NewAdminUserHandler(cfg config.Config, u *repository.UserRepo, s *session.Manager) *AdminUserHandler {
	return &AdminUserHandler{Cfg: cfg, Users: u, Sessions: s}
}

// Index handles GET /users: the filterable, sortable, paginated user
// list plus the status directory for the filter controls.
func (h *AdminUserHandler) Index(c echo.Context) error {
	page, perPage := pagination.Clamp(
		queryInt(c, "page", "1"),
		queryInt(c, "per_page", strconv.Itoa(h.Cfg.PerPage)),
		h.Cfg.PerPage, h.Cfg.MaxPerPage)

	q := repository.UserQuery{
		Search:   c.QueryParam("search"),
		OrderBy:  c.QueryParam("order_by"),
		OrderDir: c.QueryParam("order_direction"),
		Page:     page,
		PerPage:  perPage,
	}
	if v := c.QueryParam("status_id"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 8); err == nil {
			q.StatusID = model.StatusID(n)
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, total, err := h.Users.List(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	vm := echo.Map{
		"users": echo.Map{
			"data":        users,
			"total":       total,
			"perPage":     perPage,
			"currentPage": page,
			"lastPage":    pagination.LastPage(total, perPage),
		},
		"userStatuses": model.AllStatuses(),
	}
	if msg := h.Sessions.TakeFlash(c, "success"); msg != "" {
		vm["flash"] = echo.Map{"success": msg}
	}
	return c.JSON(http.StatusOK, vm)
}

// assignableByLabel returns the pickable statuses sorted by label, the
// order the form dropdowns use.
func assignableByLabel() []model.UserStatus {
	sts := model.AssignableStatuses()
	sort.Slice(sts, func(i, j int) bool { return sts[i].Label < sts[j].Label })
	return sts
}

// Create handles GET /users/create and returns the create form's
// view-model. Trashed is never offered as a pickable status.
func (h *AdminUserHandler) Create(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"userStatuses": assignableByLabel()})
}

type userFormReq struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	StatusID uint8  `json:"status_id" form:"status_id"`
}

func (h *AdminUserHandler) validateUserForm(ctx context.Context, req userFormReq, selfID uint64) (fieldErrors, error) {
	fe := fieldErrors{}
	if req.Name == "" {
		fe.add("name", "The name field is required.")
	} else if len(req.Name) > 255 {
		fe.add("name", "The name may not be greater than 255 characters.")
	}
	switch {
	case req.Email == "":
		fe.add("email", "The email field is required.")
	case !validEmail(req.Email):
		fe.add("email", "The email must be a valid email address.")
	default:
		taken, err := h.Users.EmailTaken(ctx, req.Email, selfID)
		if err != nil {
			return nil, err
		}
		if taken {
			fe.add("email", "The email has already been taken.")
		}
	}
	if req.StatusID == 0 {
		fe.add("status_id", "The status_id field is required.")
	} else if !model.ValidStatus(model.StatusID(req.StatusID)) {
		fe.add("status_id", "The selected status_id is invalid.")
	}
	return fe, nil
}

// Store handles POST /users. The username is the email; the password
// column gets a random unusable hash since dashboard accounts are
// provisioned without a credential.
func (h *AdminUserHandler) Store(c echo.Context) error {
	var req userFormReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fe, err := h.validateUserForm(ctx, req, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if fe.any() {
		return validationFailed(c, fe)
	}

	hash, err := utils.RandomPasswordHash(h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	if _, err := h.Users.Create(ctx, req.Name, req.Email, req.Email, hash, model.StatusID(req.StatusID)); err != nil {
		if err == repository.ErrEmailExists {
			// Concurrent create can still trip the unique constraint
			// after the pre-check passed.
			fe.add("email", "The email has already been taken.")
			return validationFailed(c, fe)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	h.Sessions.Flash(c, "success", "User created successfully")
	return c.Redirect(http.StatusFound, "/users")
}

// Edit handles GET /users/:id/edit.
func (h *AdminUserHandler) Edit(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return userNotFound(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return userNotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":         u,
		"userStatuses": assignableByLabel(),
	})
}

// Update handles PUT /users/:id (name, email, status).
func (h *AdminUserHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return userNotFound(c)
	}
	var req userFormReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return userNotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	fe, err := h.validateUserForm(ctx, req, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if fe.any() {
		return validationFailed(c, fe)
	}

	if err := h.Users.Update(ctx, id, req.Name, req.Email, model.StatusID(req.StatusID)); err != nil {
		if err == repository.ErrEmailExists {
			fe.add("email", "The email has already been taken.")
			return validationFailed(c, fe)
		}
		if err == repository.ErrNotFound {
			return userNotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}

	h.Sessions.Flash(c, "success", "User updated successfully")
	return c.Redirect(http.StatusFound, "/users")
}

// transition applies one of the four status operations. Every
// transition is total: any current status may move to the target, and
// repeating a transition is an idempotent success.
func (h *AdminUserHandler) transition(c echo.Context, target model.StatusID, flash string) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return userNotFound(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return userNotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Users.UpdateStatus(ctx, id, target); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}

	h.Sessions.Flash(c, "success", flash)
	return redirectBack(c)
}

// Activate handles PATCH /users/:id/activate.
func (h *AdminUserHandler) Activate(c echo.Context) error {
	return h.transition(c, model.StatusActive, "User successfully activated")
}

// Deactivate handles PATCH /users/:id/deactivate.
func (h *AdminUserHandler) Deactivate(c echo.Context) error {
	return h.transition(c, model.StatusInactive, "User successfully deactivated")
}

// Trash handles PATCH /users/:id/trash. Trashing is the soft delete;
// no rows are ever removed.
func (h *AdminUserHandler) Trash(c echo.Context) error {
	return h.transition(c, model.StatusTrashed, "User moved to trash successfully")
}

// RestoreTrash handles PATCH /users/:id/restore-trash. Restore lands
// on Active, the same target as Activate.
func (h *AdminUserHandler) RestoreTrash(c echo.Context) error {
	return h.transition(c, model.StatusActive, "User successfully restored from trash")
}

// redirectBack mirrors a form post back to the page it came from.
func redirectBack(c echo.Context) error {
	back := c.Request().Referer()
	if back == "" {
		back = "/users"
	}
	return c.Redirect(http.StatusFound, back)
}

func userNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
}
