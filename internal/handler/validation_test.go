package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"client@example.com", true},
		{"a.b+tag@sub.example.org", true},
		{"", false},
		{"not-an-email", false},
		{"missing@domain @space.com", false},
		{"Jane Doe <jane@example.com>", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, validEmail(tc.in), "input %q", tc.in)
	}
}

func TestFieldErrors(t *testing.T) {
	fe := fieldErrors{}
	assert.False(t, fe.any())

	fe.add("email", "The email field is required.")
	fe.add("email", "The email must be a valid email address.")
	assert.True(t, fe.any())
	assert.Len(t, fe["email"], 2)
}

func newQueryContext(rawQuery string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/foods?"+rawQuery, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestQueryBool(t *testing.T) {
	cases := []struct {
		query string
		want  bool
	}{
		{"hybrid=1", true},
		{"hybrid=true", true},
		{"hybrid=TRUE", true},
		{"hybrid=yes", true},
		{"hybrid=on", true},
		{"hybrid=0", false},
		{"hybrid=false", false},
		{"hybrid=", false},
		{"", false},
	}
	for _, tc := range cases {
		c := newQueryContext(tc.query)
		assert.Equal(t, tc.want, queryBool(c, "hybrid"), "query %q", tc.query)
	}
}

func TestQueryInt(t *testing.T) {
	c := newQueryContext("page=3")
	assert.Equal(t, 3, queryInt(c, "page", "1"))
	assert.Equal(t, 1, queryInt(c, "missing", "1"))

	c = newQueryContext("page=garbage")
	assert.Equal(t, 0, queryInt(c, "page", "1"))
}
