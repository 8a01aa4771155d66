package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yakoovad/teamhub/pkg/logger"
	"go.uber.org/zap"
)

func (h *Handler) RegisterUser(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Name     string `json:"name" validate:"required,min=2"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("registering user", zap.String("email", req.Email))

	user, err := h.user.Register(e.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		l.Error("failed to register user", zap.String("email", req.Email), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	token, err := h.user.Login(e.Request().Context(), req.Email, req.Password)
	if err != nil {
		l.Warn("failed login attempt", zap.String("email", req.Email))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, struct {
		Token string `json:"token"`
	}{Token: token})
}

// TestProtectedProcedure only probes the session wiring.
func (h *Handler) TestProtectedProcedure(e echo.Context) error {
	if _, err := h.caller(e); err != nil {
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}
