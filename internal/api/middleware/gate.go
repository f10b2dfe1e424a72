package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fintrackhq/fintrack-api/internal/api/metrics"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

const (
	// SessionCookie is the name of the HTTP-only session cookie.
	SessionCookie = "fintrack_session"
	// SessionContextKey is where the gate stores the verified claims.
	SessionContextKey = "session"

	signInPath  = "/auth/signin"
	signUpPath  = "/auth/signup"
	landingPath = "/dashboard"
)

// allowList holds the path prefixes served without a session: the auth pages
// and API, static assets, probes, metrics and API docs.
var allowList = []string{
	"/auth/",
	"/api/auth/",
	"/static/",
	"/health",
	"/metrics",
	"/swagger/",
}

// Gate is the perimeter authentication check, evaluated once per request
// before any handler. It reads the session cookie, injects verified claims
// into the request context, and decides pass / redirect / reject:
//
//   - allow-listed paths always pass;
//   - protected API paths without a session get 401;
//   - protected page paths without a session redirect to the sign-in page
//     with the original path as callbackUrl;
//   - auth-entry pages with a valid session redirect to the landing page.
func Gate(issuer ports.SessionIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			claims := readSession(issuer, c)

			// No point showing the login form to someone who is logged in.
			if claims != nil && (path == signInPath || path == signUpPath) {
				return c.Redirect(http.StatusFound, landingPath)
			}

			if claims != nil {
				c.Set(SessionContextKey, claims)
				return next(c)
			}

			if allowed(path) {
				return next(c)
			}

			metrics.AuthRejectionsTotal.WithLabelValues("unauthorized").Inc()
			if strings.HasPrefix(path, "/api/") {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return c.Redirect(http.StatusFound, signInPath+"?callbackUrl="+url.QueryEscape(path))
		}
	}
}

// readSession extracts and verifies the session cookie. Any failure —
// missing cookie, bad signature, expired token — yields nil (anonymous).
func readSession(issuer ports.SessionIssuer, c echo.Context) *ports.SessionClaims {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := issuer.Read(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

func allowed(path string) bool {
	for _, prefix := range allowList {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
