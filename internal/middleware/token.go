package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/advenue/foodadmin/internal/repository"
	"github.com/advenue/foodadmin/internal/utils"
)

// TokenAuth returns an Echo middleware that authenticates the bearer
// credential issued by /v1/login. The credential is the composite
// "<id>|<secret>": the id locates the token row and the SHA-256 of the
// secret must match the stored hash in constant time. Expired tokens
// are rejected (they stay in the table until the next login from the
// same device prunes them). On success the owning user and the token
// id are stashed in the request context under "user" and "token_id".
func TokenAuth(tokens *repository.TokenRepo, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthenticated(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			id, secret, err := utils.SplitToken(raw)
			if err != nil {
				return unauthenticated(c)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			tok, err := tokens.GetByID(ctx, id)
			if err != nil {
				return unauthenticated(c)
			}
			if !utils.EqualHashes(tok.TokenHash, utils.HashTokenSecret(secret)) {
				return unauthenticated(c)
			}
			if time.Now().UTC().After(tok.ExpiresAt) {
				return unauthenticated(c)
			}

			u, err := users.GetByID(ctx, tok.UserID)
			if err != nil {
				return unauthenticated(c)
			}

			c.Set("user", u)
			c.Set("token_id", tok.ID)
			return next(c)
		}
	}
}

// unauthenticated writes the uniform 401 envelope. The message never
// distinguishes why the credential was rejected.
func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"success": false,
		"message": "Unauthenticated",
	})
}
