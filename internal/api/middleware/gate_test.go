package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

// stubIssuer accepts exactly one token value and returns fixed claims for it.
type stubIssuer struct {
	token  string
	claims *ports.SessionClaims
}

func (s *stubIssuer) Issue(domain.Identity) (string, error) { return s.token, nil }

func (s *stubIssuer) Read(token string) (*ports.SessionClaims, error) {
	if token == s.token && s.claims != nil {
		return s.claims, nil
	}
	return nil, ports.ErrNoSession
}

func (s *stubIssuer) TTL() time.Duration { return time.Hour }

func newStubIssuer() *stubIssuer {
	return &stubIssuer{
		token: "valid-token",
		claims: &ports.SessionClaims{
			Identity:  domain.Identity{ID: "acc_1", Email: "alice@example.com", Name: "Alice"},
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func runGate(t *testing.T, path, cookie string) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Gate(newStubIssuer())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, c
}

func TestGate_AllowListedPathPassesAnonymously(t *testing.T) {
	for _, path := range []string{"/auth/signin", "/api/auth/signin", "/health", "/metrics", "/swagger/index.html", "/static/app.css"} {
		rec, called, _ := runGate(t, path, "")
		if !called {
			t.Fatalf("%s: next not called", path)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestGate_ProtectedAPIWithoutSession(t *testing.T) {
	rec, called, _ := runGate(t, "/api/v1/expenses", "")
	if called {
		t.Fatalf("next must not run without a session")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGate_ProtectedPageRedirectsWithCallback(t *testing.T) {
	rec, called, _ := runGate(t, "/dashboard", "")
	if called {
		t.Fatalf("next must not run without a session")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc := rec.Header().Get(echo.HeaderLocation)
	if loc != "/auth/signin?callbackUrl=%2Fdashboard" {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
}

func TestGate_InvalidCookieIsAnonymous(t *testing.T) {
	rec, called, _ := runGate(t, "/api/v1/expenses", "garbage")
	if called {
		t.Fatalf("next must not run with an invalid session")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGate_ValidSessionInjectsClaims(t *testing.T) {
	_, called, c := runGate(t, "/api/v1/expenses", "valid-token")
	if !called {
		t.Fatalf("next not called with a valid session")
	}
	claims, ok := c.Get(SessionContextKey).(*ports.SessionClaims)
	if !ok || claims == nil {
		t.Fatalf("claims not injected into context")
	}
	if claims.ID != "acc_1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestGate_AuthenticatedOnSignInRedirectsToDashboard(t *testing.T) {
	for _, path := range []string{"/auth/signin", "/auth/signup"} {
		rec, called, _ := runGate(t, path, "valid-token")
		if called {
			t.Fatalf("%s: signed-in user must be redirected away", path)
		}
		if rec.Code != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
			t.Fatalf("%s: unexpected redirect target %s", path, loc)
		}
	}
}
