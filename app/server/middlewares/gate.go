package middlewares

import (
	"errors"
	"library-articles/app/server/auth"
	"library-articles/app/server/errs"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Policy int

const (
	Public        Policy = iota // no identity needed
	Optional                    // identity attached when a token is sent
	Authenticated               // any verified identity
	AdminOnly                   // verified identity with the admin role
)

const identityKey = "identity"

// Gate turns route policies into echo middleware. Missing or bad tokens are
// answered with errs.ErrUnauthenticated, valid tokens without the admin role
// with errs.ErrForbidden.
type Gate struct {
	verifier auth.Verifier
	admins   map[string]struct{}
	l        *zap.Logger
}

func NewGate(verifier auth.Verifier, adminEmails []string, l *zap.Logger) *Gate {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}

	return &Gate{
		verifier: verifier,
		admins:   admins,
		l:        l,
	}
}

func (g *Gate) Require(policy Policy) echo.MiddlewareFunc {
	switch policy {
	case Optional:
		return g.authenticate(true)
	case Authenticated:
		return g.authenticate(false)
	case AdminOnly:
		authenticate := g.authenticate(false)
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return authenticate(g.requireAdmin(next))
		}
	default:
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
}

// IsAdmin holds when the token carries the admin claim or the email is in
// the admin registry.
func (g *Gate) IsAdmin(identity *auth.Identity) bool {
	if identity == nil {
		return false
	}
	if identity.Admin {
		return true
	}
	_, ok := g.admins[strings.ToLower(identity.Email)]
	return ok
}

func (g *Gate) authenticate(optional bool) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  identityKey,
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			identity, err := g.verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return nil, err
			}
			resolved := *identity
			resolved.Admin = g.IsAdmin(identity)
			return &resolved, nil
		},
		ContinueOnIgnoredError: optional,
		ErrorHandler: func(c echo.Context, err error) error {
			var extractionErr *echojwt.TokenExtractionError
			if optional && errors.As(err, &extractionErr) {
				// no token, carry on anonymously
				return nil
			}

			Logger(c, g.l).Info("request rejected", zap.String("reason", "unauthenticated"), zap.Error(err))
			return errs.ErrUnauthenticated
		},
	})
}

func (g *Gate) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := IdentityFrom(c)
		if identity == nil {
			return errs.ErrUnauthenticated
		}
		if !identity.Admin {
			Logger(c, g.l).Info("request rejected", zap.String("reason", "forbidden"), zap.String("email", identity.Email))
			return errs.ErrForbidden
		}
		return next(c)
	}
}

// IdentityFrom returns the verified caller, or nil on anonymous requests.
func IdentityFrom(c echo.Context) *auth.Identity {
	identity, _ := c.Get(identityKey).(*auth.Identity)
	return identity
}
