package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	FullName        string `json:"fullName" validate:"required,min=2,max=255"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest carries the direct password overwrite request.
type ForgotPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// ResetPasswordRequest carries a reset token and the new password.
type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondValidation(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err.Error())
	}
	if req.Password != req.ConfirmPassword {
		return respondValidation(c, "passwords do not match")
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Message: "registration successful",
		Token:   token,
		User:    user,
	})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondValidation(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "login successful",
		Token:   token,
		User:    user,
	})
}

// ForgotPassword godoc
// @Summary Overwrite the password for an email (legacy direct flow)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Email and new password"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondValidation(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err.Error())
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email, req.Password); err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "password reset successful", nil)
}

// ResetPassword godoc
// @Summary Reset the password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondValidation(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err.Error())
	}
	if req.Password != req.ConfirmPassword {
		return respondValidation(c, "passwords do not match")
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "password reset successful", nil)
}

// CurrentUser godoc
// @Summary Return the profile behind the session token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /auth/current-user [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.SessionClaims)
	if !ok {
		return respondError(c, errors.ErrUnauthorized)
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "", echo.Map{"user": user})
}

// Logout godoc
// @Summary Logout the current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Sessions are stateless; the client discards the token.
	return respond(c, http.StatusOK, "logged out successfully", nil)
}
