package router // package router defines how HTTP routes are registered for the application

import (
	"github.com/labstack/echo/v4"

	"github.com/advenue/foodadmin/internal/handler"
	"github.com/advenue/foodadmin/internal/middleware"
	"github.com/advenue/foodadmin/internal/repository"
	"github.com/advenue/foodadmin/internal/session"
)

// RegisterRoutes registers routes that carry no authentication at all.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the token-based v1 API: the public login plus
// the bearer-protected catalog and logout endpoints.
func RegisterAPI(e *echo.Echo, a *handler.AuthHandler, f *handler.FoodHandler,
	tokens *repository.TokenRepo, users *repository.UserRepo) {

	e.POST("/v1/login", a.Login)

	v1 := e.Group("/v1")
	v1.Use(middleware.TokenAuth(tokens, users))

	v1.POST("/logout", a.Logout)

	// Catalog. The fixed /foods/categories paths are registered before
	// the :id routes so Echo resolves them by the more specific match.
	v1.GET("/foods/categories", f.ListCategories)
	v1.GET("/foods/categories/:id", f.ByCategory)
	v1.GET("/foods", f.Index)
	v1.GET("/foods/:id", f.Show)
	v1.POST("/foods", f.Store)
	v1.POST("/foods/submit", f.Store)
	v1.PUT("/foods/:id", f.Update)
	v1.DELETE("/foods/:id", f.Destroy)
}

// RegisterAdmin registers the dashboard surface: session login pages,
// the SSO bridge and the session-guarded user management routes.
func RegisterAdmin(e *echo.Echo, auth *handler.AdminAuthHandler,
	users *handler.AdminUserHandler, sso *handler.SSOHandler, sessions *session.Manager) {

	e.GET("/login", auth.LoginForm)
	e.POST("/login", auth.Login)
	e.POST("/logout", auth.Logout)
	e.GET("/sso", sso.Login)

	guarded := e.Group("")
	guarded.Use(middleware.SessionAuth(sessions))

	guarded.GET("/dashboard", auth.Dashboard)

	guarded.GET("/users", users.Index)
	guarded.GET("/users/create", users.Create)
	guarded.POST("/users", users.Store)
	guarded.GET("/users/:id/edit", users.Edit)
	guarded.PUT("/users/:id", users.Update)

	guarded.PATCH("/users/:id/activate", users.Activate)
	guarded.PATCH("/users/:id/deactivate", users.Deactivate)
	guarded.PATCH("/users/:id/trash", users.Trash)
	guarded.PATCH("/users/:id/restore-trash", users.RestoreTrash)
}
