package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fintrackhq/fintrack-api/internal/api/middleware"
	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Account, error)
	loginFn    func(ctx context.Context, email, password string) (domain.Identity, error)
	verifyFn   func(ctx context.Context, email, code string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) VerifyEmail(ctx context.Context, email, code string) error {
	return s.verifyFn(ctx, email, code)
}

func (s *stubAuthService) ChangePassword(context.Context, string, string, string) error { return nil }
func (s *stubAuthService) DeleteAccount(context.Context, string) error                  { return nil }

type fixedIssuer struct{}

func (fixedIssuer) Issue(domain.Identity) (string, error)        { return "signed-token", nil }
func (fixedIssuer) Read(string) (*ports.SessionClaims, error)    { return nil, ports.ErrNoSession }
func (fixedIssuer) TTL() time.Duration                           { return time.Hour }

func newAuthTestContext(t *testing.T, method, path, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	res := rec.Result()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_SignIn_SetsSessionCookie(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (domain.Identity, error) {
			if email != "alice@example.com" || password != "s3cretpass" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return domain.Identity{ID: "acc_1", Email: email, Name: "Alice"}, nil
		},
	}
	h := NewAuthHandler(stub, fixedIssuer{})

	_, c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/signin",
		`{"email":"alice@example.com","password":"s3cretpass"}`)

	if err := h.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := findCookie(t, rec, middleware.SessionCookie)
	if cookie == nil {
		t.Fatalf("session cookie not set")
	}
	if cookie.Value != "signed-token" {
		t.Fatalf("unexpected cookie value: %s", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be HTTP-only")
	}
	if cookie.Path != "/" {
		t.Fatalf("unexpected cookie path: %s", cookie.Path)
	}
	if cookie.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("cookie MaxAge should match the session TTL, got %d", cookie.MaxAge)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "acc_1" || resp["email"] != "alice@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("response must not carry credential material")
	}
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (domain.Identity, error) {
			return domain.Identity{}, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, fixedIssuer{})

	_, c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/signin",
		`{"email":"alice@example.com","password":"wrong"}`)

	err := h.SignIn(c)
	if err == nil {
		t.Fatalf("expected error")
	}
	if cookie := findCookie(t, rec, middleware.SessionCookie); cookie != nil {
		t.Fatalf("no cookie may be set on a failed login")
	}
}

func TestAuthHandler_SignIn_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (domain.Identity, error) {
			t.Fatalf("service must not be called for an invalid payload")
			return domain.Identity{}, nil
		},
	}
	h := NewAuthHandler(stub, fixedIssuer{})

	e, c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/signin", `{"email":"not-an-email"}`)

	if err := h.SignIn(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_SignUp(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.Account, error) {
			if in.Email != "bob@example.com" || in.Name != "Bob" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Account{ID: "acc_2", Email: in.Email, Name: in.Name}, nil
		},
	}
	h := NewAuthHandler(stub, fixedIssuer{})

	_, c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/signup",
		`{"name":"Bob","email":"bob@example.com","password":"longenough"}`)

	if err := h.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "acc_2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_SignUp_ShortPassword(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.Account, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, fixedIssuer{})

	e, c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/signup",
		`{"name":"Bob","email":"bob@example.com","password":"short"}`)

	if err := h.SignUp(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_SignOut_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, fixedIssuer{})

	_, c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/signout", "")

	if err := h.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	cookie := findCookie(t, rec, middleware.SessionCookie)
	if cookie == nil {
		t.Fatalf("clearing cookie not set")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: value=%q maxage=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestAuthHandler_VerifyEmail(t *testing.T) {
	verified := false
	stub := &stubAuthService{
		verifyFn: func(_ context.Context, email, code string) error {
			if email != "bob@example.com" || code != "code-123" {
				t.Fatalf("unexpected args: %s %s", email, code)
			}
			verified = true
			return nil
		},
	}
	h := NewAuthHandler(stub, fixedIssuer{})

	_, c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/verify",
		`{"email":"bob@example.com","code":"code-123"}`)

	if err := h.VerifyEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !verified {
		t.Fatalf("service not called")
	}
}

func TestAuthHandler_Me_RequiresSession(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, fixedIssuer{})

	_, c, _ := newAuthTestContext(t, http.MethodGet, "/api/auth/me", "")

	err := h.Me(c)
	if err == nil {
		t.Fatalf("expected error without session claims")
	}

	c.Set(middleware.SessionContextKey, &ports.SessionClaims{
		Identity: domain.Identity{ID: "acc_1", Email: "alice@example.com", Name: "Alice"},
	})
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
