package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fintrackhq/fintrack-api/internal/api/metrics"
	"github.com/fintrackhq/fintrack-api/internal/api/middleware"
	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	issuer      ports.SessionIssuer
}

func NewAuthHandler(authService ports.AuthService, issuer ports.SessionIssuer) *AuthHandler {
	return &AuthHandler{authService: authService, issuer: issuer}
}

type signUpRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required"`
}

type changePasswordRequest struct {
	Current string `json:"current" validate:"required"`
	Next    string `json:"next"    validate:"required,min=8"`
}

type identityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SignUp creates a new, unverified account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration details"
// @Success      201   {object}  identityResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	id := account.Identity()
	return c.JSON(http.StatusCreated, identityResponse{ID: id.ID, Email: id.Email, Name: id.Name})
}

// SignIn authenticates credentials and sets the session cookie.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  identityResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	token, err := h.issuer.Issue(identity)
	if err != nil {
		return err
	}

	setSessionCookie(c, token, h.issuer.TTL())
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.Inc()

	return c.JSON(http.StatusOK, identityResponse{ID: identity.ID, Email: identity.Email, Name: identity.Name})
}

// SignOut clears the session cookie. Sessions are self-contained tokens, so
// there is nothing to revoke server-side.
//
// @Summary      Sign out
// @Tags         auth
// @Success      204  "cookie cleared"
// @Router       /api/auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// VerifyEmail consumes a verification code and marks the account verified.
//
// @Summary      Verify email address
// @Tags         auth
// @Accept       json
// @Param        body  body  verifyRequest  true  "Email and verification code"
// @Success      204   "account verified"
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/verify [post]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.VerifyEmail(c.Request().Context(), req.Email, req.Code); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangePassword replaces the caller's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      204   "password changed"
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims, err := session(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return h.authService.ChangePassword(c.Request().Context(), claims.ID, req.Current, req.Next)
}

// DeleteAccount removes the caller's account and clears the session cookie.
//
// @Summary      Delete account
// @Tags         auth
// @Success      204  "account deleted"
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/account [delete]
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	claims, err := session(c)
	if err != nil {
		return err
	}

	if err := h.authService.DeleteAccount(c.Request().Context(), claims.ID); err != nil {
		return err
	}
	clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the identity carried by the current session.
//
// @Summary      Current session identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  identityResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identityResponse{ID: claims.ID, Email: claims.Email, Name: claims.Name})
}

func setSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAccountNotVerified):
		return "not_verified"
	default:
		return "invalid_credentials"
	}
}
