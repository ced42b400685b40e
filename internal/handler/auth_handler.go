package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "userauth/internal/errors"
	"userauth/internal/logging"
	"userauth/internal/model"
	"userauth/internal/service"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	authService service.AuthService
	logger      *logrus.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse is returned on successful registration. The user record
// is returned as stored, password hash included.
type RegisterResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /usuarios [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.ErrValidation)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		logging.FromContext(h.logger, c).WithError(err).Warn("user registration failed")
		return respondError(c, err)
	}

	logging.FromContext(h.logger, c).WithField("user_id", user.ID).Info("user registered")
	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: "user created successfully",
		User:    user,
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.ErrValidation)
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		entry := logging.FromContext(h.logger, c).WithError(err)
		if errors.Is(err, apperrors.ErrUserNotFound) || errors.Is(err, apperrors.ErrInvalidCredentials) {
			entry.Info("login denied")
		} else {
			entry.Warn("login failed")
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "login successful",
		Token:   token,
	})
}

var errInvalidBody = errors.New("invalid request body")

func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.Body())
}
