package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yakoovad/teamhub/pkg/logger"
	"go.uber.org/zap"
)

func (h *Handler) GetUserTeam(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	callerID, svcErr := h.caller(e)
	if svcErr != nil {
		return h.transportError(e, svcErr)
	}

	// Profiles are viewable by any signed-in user, so the target may
	// differ from the caller. Defaults to the caller's own teams.
	userID := e.QueryParam("user_id")
	if userID == "" {
		userID = callerID
	}

	teams, svcErr := h.team.GetUserTeams(e.Request().Context(), userID)
	if svcErr != nil {
		l.Error("failed to get user teams", zap.String("user_id", userID), zap.Any("error", svcErr))
		return h.transportError(e, svcErr)
	}

	return e.JSON(http.StatusOK, teams)
}

func (h *Handler) CreateTeam(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	callerID, svcErr := h.caller(e)
	if svcErr != nil {
		return h.transportError(e, svcErr)
	}

	var req struct {
		Name        string  `json:"name" validate:"required,min=1"`
		Description *string `json:"description"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("creating team", zap.String("name", req.Name), zap.String("caller_id", callerID))

	teamID, svcErr := h.team.CreateTeam(e.Request().Context(), callerID, req.Name, req.Description)
	if svcErr != nil {
		l.Error("failed to create team", zap.String("name", req.Name), zap.Any("error", svcErr))
		return h.transportError(e, svcErr)
	}

	return e.JSON(http.StatusCreated, struct {
		ID string `json:"id"`
	}{ID: teamID})
}

func (h *Handler) UpdateTeam(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	callerID, svcErr := h.caller(e)
	if svcErr != nil {
		return h.transportError(e, svcErr)
	}

	var req struct {
		TeamID      string  `json:"teamId" validate:"required"`
		Name        string  `json:"name" validate:"required,min=1"`
		Description *string `json:"description"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	teamID, svcErr := h.team.UpdateTeam(e.Request().Context(), req.TeamID, callerID, req.Name, req.Description)
	if svcErr != nil {
		l.Error("failed to update team", zap.String("team_id", req.TeamID), zap.Any("error", svcErr))
		return h.transportError(e, svcErr)
	}

	return e.JSON(http.StatusOK, struct {
		ID string `json:"id"`
	}{ID: teamID})
}

func (h *Handler) DeleteTeam(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	callerID, svcErr := h.caller(e)
	if svcErr != nil {
		return h.transportError(e, svcErr)
	}

	var req struct {
		TeamID string `json:"teamId" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("deleting team", zap.String("team_id", req.TeamID), zap.String("caller_id", callerID))

	if svcErr = h.team.DeleteTeam(e.Request().Context(), req.TeamID, callerID); svcErr != nil {
		l.Error("failed to delete team", zap.String("team_id", req.TeamID), zap.Any("error", svcErr))
		return h.transportError(e, svcErr)
	}

	return e.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}
