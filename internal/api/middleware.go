package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yakoovad/teamhub/internal/auth"
	"github.com/yakoovad/teamhub/internal/service"
	"github.com/yakoovad/teamhub/pkg/logger"
	"go.uber.org/zap"
)

func ZapLoggerMiddleware(l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			reqLogger := l.With(
				zap.String("request_id", requestID),
			)

			ctx := logger.WithLogger(req.Context(), reqLogger)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			latency := time.Since(start)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
				zap.Int("status", res.Status),
				zap.Duration("latency", latency),
				zap.Int64("bytes_in", req.ContentLength),
				zap.Int64("bytes_out", res.Size),
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				reqLogger.Error("request failed", fields...)
			} else {
				reqLogger.Info("request completed", fields...)
			}

			return err
		}
	}
}

// SessionMiddleware verifies the bearer session token and threads the
// caller's user id through the request context. Requests without a valid
// session are rejected here, before any service or storage call.
func SessionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				return unauthorized(c, "missing bearer token")
			}

			userID, ok := auth.IsValidToken(tokenString)
			if !ok {
				return unauthorized(c, "invalid or expired session")
			}

			ctx := auth.WithCaller(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, message string) error {
	response := struct {
		Error *service.Error `json:"error"`
	}{Error: service.NewError(service.ErrorCodeUnauthorized, message)}

	return c.JSON(http.StatusUnauthorized, response)
}
