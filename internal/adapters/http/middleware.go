package http

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/janosbartek-debug/aqua-astrae/internal/domain"
)

const headerRequestID = "X-Request-Id"

// OriginGuard rejects cross-origin requests before any body handling. CORS
// headers are emitted only for the allowed origin; preflight requests from
// a foreign origin are rejected the same way as real ones.
func OriginGuard(allowedOrigin string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get(echo.HeaderOrigin)

			if origin != "" && origin != allowedOrigin {
				return c.JSON(http.StatusForbidden, ErrorResponse{Error: domain.ErrForbiddenOrigin.Error()})
			}

			if origin != "" {
				h := c.Response().Header()
				h.Set(echo.HeaderAccessControlAllowOrigin, allowedOrigin)
				h.Set(echo.HeaderAccessControlAllowMethods, "POST, OPTIONS")
				h.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type")
			}

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}

// RequestIDMiddleware ensures every request has a unique X-Request-Id.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(headerRequestID)
			if id == "" {
				id = generateID()
			}
			c.Response().Header().Set(headerRequestID, id)
			c.Set("request_id", id)
			return next(c)
		}
	}
}

// LoggingMiddleware logs each request with structured fields.
func LoggingMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("request",
				"request_id", c.Get("request_id"),
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}

func generateID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
