package middlewares

import (
	"context"
	"library-articles/app/server/auth"
	"library-articles/app/server/errs"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// tokenVerifier knows a fixed set of tokens.
type tokenVerifier map[string]auth.Identity

func (v tokenVerifier) Verify(_ context.Context, token string) (*auth.Identity, error) {
	identity, ok := v[auth.StripBearer(token)]
	if !ok {
		return nil, errs.ErrUnauthenticated
	}
	return &identity, nil
}

func newTestEcho() *echo.Echo {
	verifier := tokenVerifier{
		"reader":   {UID: "u1", Email: "reader@example.com", ExpiresAt: time.Now().Add(time.Hour)},
		"claimed":  {UID: "u2", Email: "claimed@example.com", Admin: true},
		"registry": {UID: "u3", Email: "Boss@Example.com"},
	}
	gate := NewGate(verifier, []string{"boss@example.com"}, zap.NewNop())

	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		_ = c.NoContent(errs.Status(errs.KindOf(err)))
	}
	e.Use(RequestLogger(zap.NewNop()))

	whoami := func(c echo.Context) error {
		identity := IdentityFrom(c)
		if identity == nil {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, identity.Email)
	}
	e.GET("/public", whoami, gate.Require(Public))
	e.GET("/optional", whoami, gate.Require(Optional))
	e.GET("/secure", whoami, gate.Require(Authenticated))
	e.GET("/admin", whoami, gate.Require(AdminOnly))
	return e
}

func do(e *echo.Echo, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGatePolicies(t *testing.T) {
	e := newTestEcho()

	cases := []struct {
		path, authorization string
		status              int
		body                string
	}{
		{"/public", "", http.StatusOK, "anonymous"},
		{"/public", "Bearer garbage", http.StatusOK, "anonymous"},

		{"/optional", "", http.StatusOK, "anonymous"},
		{"/optional", "Bearer reader", http.StatusOK, "reader@example.com"},
		{"/optional", "Bearer garbage", http.StatusUnauthorized, ""},

		{"/secure", "", http.StatusUnauthorized, ""},
		{"/secure", "Bearer garbage", http.StatusUnauthorized, ""},
		{"/secure", "Bearer reader", http.StatusOK, "reader@example.com"},
		{"/secure", "reader", http.StatusOK, "reader@example.com"},

		{"/admin", "", http.StatusUnauthorized, ""},
		{"/admin", "Bearer garbage", http.StatusUnauthorized, ""},
		{"/admin", "Bearer reader", http.StatusForbidden, ""},
		{"/admin", "Bearer claimed", http.StatusOK, "claimed@example.com"},
		{"/admin", "Bearer registry", http.StatusOK, "Boss@Example.com"},
	}

	for _, tc := range cases {
		rec := do(e, tc.path, tc.authorization)
		assert.Equal(t, tc.status, rec.Code, "%s with %q", tc.path, tc.authorization)
		if tc.body != "" {
			assert.Equal(t, tc.body, rec.Body.String(), "%s with %q", tc.path, tc.authorization)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	gate := NewGate(tokenVerifier{}, []string{" Root@Example.com "}, zap.NewNop())
	assert.False(t, gate.IsAdmin(nil))
	assert.True(t, gate.IsAdmin(&auth.Identity{Email: "root@example.com"}))
	assert.True(t, gate.IsAdmin(&auth.Identity{Email: "x@example.com", Admin: true}))
	assert.False(t, gate.IsAdmin(&auth.Identity{Email: "x@example.com"}))
}
