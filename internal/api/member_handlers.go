package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yakoovad/teamhub/internal/model"
	"github.com/yakoovad/teamhub/pkg/logger"
	"go.uber.org/zap"
)

func (h *Handler) GetUserRole(e echo.Context) error {
	callerID, svcErr := h.caller(e)
	if svcErr != nil {
		return h.transportError(e, svcErr)
	}

	teamID := e.QueryParam("team_id")
	if teamID == "" {
		return h.transportError(e, invalidParam("team_id is required"))
	}

	role, svcErr := h.member.GetUserRole(e.Request().Context(), teamID, callerID)
	if svcErr != nil {
		return h.transportError(e, svcErr)
	}

	return e.JSON(http.StatusOK, struct {
		Role model.Role `json:"role"`
	}{Role: role})
}

func (h *Handler) GetTeamMembers(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	callerID, svcErr := h.caller(e)
	if svcErr != nil {
		return h.transportError(e, svcErr)
	}

	teamID := e.QueryParam("team_id")
	if teamID == "" {
		return h.transportError(e, invalidParam("team_id is required"))
	}

	members, svcErr := h.member.GetTeamMembers(e.Request().Context(), teamID, callerID)
	if svcErr != nil {
		l.Error("failed to get team members", zap.String("team_id", teamID), zap.Any("error", svcErr))
		return h.transportError(e, svcErr)
	}

	return e.JSON(http.StatusOK, members)
}

func (h *Handler) AddTeamMember(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	callerID, svcErr := h.caller(e)
	if svcErr != nil {
		return h.transportError(e, svcErr)
	}

	var req struct {
		TeamID string `json:"teamId" validate:"required"`
		Email  string `json:"email" validate:"required,email"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("adding team member", zap.String("team_id", req.TeamID), zap.String("email", req.Email))

	memberID, svcErr := h.member.AddTeamMember(e.Request().Context(), req.TeamID, callerID, req.Email)
	if svcErr != nil {
		l.Error("failed to add team member", zap.String("team_id", req.TeamID), zap.Any("error", svcErr))
		return h.transportError(e, svcErr)
	}

	return e.JSON(http.StatusCreated, struct {
		ID string `json:"id"`
	}{ID: memberID})
}

func (h *Handler) UpdateRole(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	callerID, svcErr := h.caller(e)
	if svcErr != nil {
		return h.transportError(e, svcErr)
	}

	var req struct {
		TeamID       string     `json:"teamId" validate:"required"`
		TeamMemberID string     `json:"teamMemberId" validate:"required"`
		Role         model.Role `json:"role" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("updating role",
		zap.String("team_id", req.TeamID),
		zap.String("team_member_id", req.TeamMemberID),
		zap.String("role", string(req.Role)))

	if svcErr = h.member.UpdateRole(e.Request().Context(), req.TeamID, req.TeamMemberID, callerID, req.Role); svcErr != nil {
		l.Error("failed to update role", zap.String("team_member_id", req.TeamMemberID), zap.Any("error", svcErr))
		return h.transportError(e, svcErr)
	}

	return e.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}

func (h *Handler) RemoveTeamMember(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	callerID, svcErr := h.caller(e)
	if svcErr != nil {
		return h.transportError(e, svcErr)
	}

	var req struct {
		TeamID       string `json:"teamId" validate:"required"`
		TeamMemberID string `json:"teamMemberId" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("removing team member",
		zap.String("team_id", req.TeamID),
		zap.String("team_member_id", req.TeamMemberID))

	if svcErr = h.member.RemoveTeamMember(e.Request().Context(), req.TeamID, req.TeamMemberID, callerID); svcErr != nil {
		l.Error("failed to remove team member", zap.String("team_member_id", req.TeamMemberID), zap.Any("error", svcErr))
		return h.transportError(e, svcErr)
	}

	return e.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}

func (h *Handler) LeaveTeam(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	callerID, svcErr := h.caller(e)
	if svcErr != nil {
		return h.transportError(e, svcErr)
	}

	var req struct {
		TeamMemberID string `json:"teamMemberId" validate:"required"`
	}

	if err := h.decodeRequest(e, &req); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("leaving team", zap.String("team_member_id", req.TeamMemberID), zap.String("caller_id", callerID))

	if svcErr = h.member.LeaveTeam(e.Request().Context(), req.TeamMemberID, callerID); svcErr != nil {
		l.Error("failed to leave team", zap.String("team_member_id", req.TeamMemberID), zap.Any("error", svcErr))
		return h.transportError(e, svcErr)
	}

	return e.JSON(http.StatusOK, struct {
		Success bool `json:"success"`
	}{Success: true})
}
