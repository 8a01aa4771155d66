package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/yakoovad/teamhub/internal/auth"
	"github.com/yakoovad/teamhub/internal/service"
	"go.uber.org/zap"
)

type Handler struct {
	user   *service.UserService
	team   *service.TeamService
	member *service.MemberService

	healthChecker HealthChecker

	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger: logger,
	}
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) WithUserService(user *service.UserService) *Handler {
	h.user = user
	return h
}

func (h *Handler) WithTeamService(team *service.TeamService) *Handler {
	h.team = team
	return h
}

func (h *Handler) WithMemberService(member *service.MemberService) *Handler {
	h.member = member
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.Use(middleware.RequestID())
	e.Use(ZapLoggerMiddleware(h.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if h.healthChecker != nil {
		e.GET("/health", h.healthChecker.HealthCheck())
	}

	e.POST("/user/register", h.RegisterUser)
	e.POST("/user/login", h.Login)

	protected := e.Group("", SessionMiddleware())

	protected.POST("/user/testProtectedProcedure", h.TestProtectedProcedure)

	protected.GET("/team/getUserTeam", h.GetUserTeam)
	protected.POST("/team/create", h.CreateTeam)
	protected.POST("/team/update", h.UpdateTeam)
	protected.POST("/team/delete", h.DeleteTeam)

	protected.GET("/teamMember/getUserRole", h.GetUserRole)
	protected.GET("/teamMember/getTeamMembers", h.GetTeamMembers)
	protected.POST("/teamMember/add", h.AddTeamMember)
	protected.POST("/teamMember/updateRole", h.UpdateRole)
	protected.POST("/teamMember/remove", h.RemoveTeamMember)
	protected.POST("/teamMember/leave", h.LeaveTeam)
}

// caller returns the session-derived user id. The session middleware
// guarantees it is present on protected routes.
func (h *Handler) caller(e echo.Context) (string, *service.Error) {
	userID, ok := auth.CallerFromContext(e.Request().Context())
	if !ok {
		return "", service.NewError(service.ErrorCodeUnauthorized, "authentication required")
	}
	return userID, nil
}

func invalidParam(message string) *service.Error {
	return service.NewError(service.ErrorCodeInvalidBody, message)
}

func (h *Handler) decodeRequest(e echo.Context, req any) *service.Error {
	if err := e.Bind(req); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, "invalid request body")
	}

	if err := e.Validate(req); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, errors.Wrap(err, "request validation failed").Error())
	}
	return nil
}

func (h *Handler) transportError(e echo.Context, err *service.Error) error {
	response := struct {
		Error *service.Error `json:"error"`
	}{Error: err}

	switch err.Code {
	case service.ErrorCodeNotFound:
		return e.JSON(http.StatusNotFound, response)
	case service.ErrorCodeUnauthorized:
		return e.JSON(http.StatusForbidden, response)
	case service.ErrorCodeConflict:
		return e.JSON(http.StatusConflict, response)
	case service.ErrorCodeInvalidBody:
		return e.JSON(http.StatusBadRequest, response)
	default:
		return e.JSON(http.StatusInternalServerError, response)
	}
}
