package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/janosbartek-debug/aqua-astrae/internal/app"
	"github.com/janosbartek-debug/aqua-astrae/internal/domain"
)

type Handler struct {
	svc        *app.OraculumService
	production bool
}

// NewHandler wraps the service for HTTP. In production mode 500 responses
// never include diagnostic detail.
func NewHandler(svc *app.OraculumService, production bool) *Handler {
	return &Handler{svc: svc, production: production}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	// Preflight OPTIONS requests are answered by the origin guard before
	// routing.
	e.POST("/v1/oraculum", h.Oraculum)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Oraculum(c echo.Context) error {
	var raw domain.RawReading
	if err := c.Bind(&raw); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}

	reading, err := h.svc.Read(c.Request().Context(), raw)
	if err != nil {
		return h.mapError(c, err)
	}

	requestID, _ := c.Get("request_id").(string)

	return c.JSON(http.StatusOK, toResponse(reading, requestID))
}

func toResponse(r app.Reading, requestID string) ReadingResponse {
	return ReadingResponse{
		Interpretation:    r.Interpretation,
		ModelUsed:         r.ModelUsed,
		TierUsed:          string(r.TierUsed),
		Tokens:            r.Tokens,
		CostUSD:           r.CostUSD,
		TotalUSDThisMonth: r.TotalUSDThisMonth,
		Meta: MetaResp{
			SpreadType:   string(r.Request.SpreadType),
			ReadingFocus: string(r.Request.ReadingFocus),
			Tone:         string(r.Request.Tone),
			Depth:        string(r.Request.Depth),
			RequestID:    requestID,
			LatencyMS:    r.LatencyMS,
		},
	}
}

func (h *Handler) mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	var ve *domain.ValidationError
	var be *domain.BudgetExceededError
	var pe *domain.ProviderHTTPError

	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Error()})

	case errors.As(err, &be):
		return c.JSON(http.StatusTooManyRequests, BudgetResponse{
			Error:      "monthly budget exhausted, try again next month",
			CapUSD:     be.CapUSD,
			CurrentUSD: be.CurrentUSD,
		})

	case errors.As(err, &pe):
		slog.Error("upstream provider failure",
			"request_id", requestID, "status", pe.Status, "details", pe.Details)
		return c.JSON(http.StatusBadGateway, UpstreamErrorResponse{
			Error:   "provider call failed",
			Status:  pe.Status,
			Details: pe.Details,
		})

	case errors.Is(err, domain.ErrMissingCredential):
		slog.Error("configuration error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "server configuration error"})

	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		resp := ErrorResponse{Error: "internal error"}
		if !h.production {
			resp.Detail = err.Error()
		}
		return c.JSON(http.StatusInternalServerError, resp)
	}
}

// ErrorHandler renders echo's own errors (404, 405) in the API's error
// shape instead of the framework default.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}
		if c.Response().Committed {
			return
		}
		msg, _ := he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		_ = c.JSON(he.Code, ErrorResponse{Error: msg})
	}
}
