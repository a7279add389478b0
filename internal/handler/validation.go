package handler

import (
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
)

// fieldErrors collects validation messages per input field, in the
// shape the API envelope nests under "errors".
type fieldErrors map[string][]string

func (fe fieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe fieldErrors) any() bool { return len(fe) > 0 }

// validationFailed writes the 422 envelope with field-level messages.
func validationFailed(c echo.Context, fe fieldErrors) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{
		"success": false,
		"errors":  fe,
	})
}

// validEmail reports whether s parses as a bare email address.
func validEmail(s string) bool {
	if s == "" {
		return false
	}
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}
