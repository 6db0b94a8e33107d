// Package server exposes the tool endpoints over HTTP. Handlers are thin
// adapters that validate input and call the in-process clients; error
// responses all flow through one mapper so each error kind has a single
// wire form.
package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hellothatsmoa/AI-News/apperr"
	"github.com/hellothatsmoa/AI-News/config"
	"github.com/hellothatsmoa/AI-News/workflow"
)

// Server wires the HTTP surface to the pipeline clients.
type Server struct {
	cfg        config.Config
	summarizer workflow.Summarizer
	images     workflow.ImageGenerator
	flow       *workflow.Orchestrator
	log        *slog.Logger
}

func New(cfg config.Config, sum workflow.Summarizer, img workflow.ImageGenerator, flow *workflow.Orchestrator, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		cfg:        cfg,
		summarizer: sum,
		images:     img,
		flow:       flow,
		log:        log,
	}
}

// Routes builds the echo handler with middleware and all endpoints attached.
func (s *Server) Routes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:    true,
		LogURI:       true,
		LogError:     true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				s.log.Info("request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"request_id", v.RequestID,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				s.log.Error("request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"request_id", v.RequestID,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.GET("/health", s.handleHealth)

	tools := e.Group("/tools", s.bearerAuth)
	tools.POST("/summarize_article", s.handleSummarize)
	tools.POST("/fal_generate", s.handleGenerate)
	tools.POST("/fal_flux_lora_generate", s.handleLoraGenerate)
	tools.POST("/process_news_url", s.handleProcessNewsURL)

	return e
}

// bearerAuth enforces the static tools secret when one is configured. An
// unset secret disables the gate entirely.
func (s *Server) bearerAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.cfg.ToolsSecret == "" {
			return next(c)
		}
		auth := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.ToolsSecret)) != 1 {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return next(c)
	}
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := mapError(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request error", "status", status, "error", err)
	}
	if jerr := c.JSON(status, body); jerr != nil {
		s.log.Error("write error response", "error", jerr)
	}
}

// mapError converts an error into its wire status and envelope. Unknown
// errors (including recovered panics) stay opaque.
func mapError(err error) (int, echo.Map) {
	var (
		validationErr *apperr.Validation
		configErr     *apperr.Config
		providerErr   *apperr.Provider
		parseErr      *apperr.Parse
		schemaErr     *apperr.Schema
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, echo.Map{"error": validationErr.Message}

	case errors.As(err, &configErr):
		return http.StatusInternalServerError, echo.Map{"error": configErr.Error()}

	case errors.As(err, &providerErr):
		status := providerErr.StatusCode
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusInternalServerError
		}
		body := echo.Map{"error": providerErr.Error()}
		if providerErr.Body != "" {
			body["details"] = providerErr.Body
		}
		return status, body

	case errors.As(err, &parseErr):
		return http.StatusInternalServerError, echo.Map{
			"error":       parseErr.Message,
			"raw_content": parseErr.RawContent,
		}

	case errors.As(err, &schemaErr):
		received := schemaErr.Received
		if received == nil {
			received = []string{}
		}
		return http.StatusInternalServerError, echo.Map{
			"error":    schemaErr.Message,
			"received": received,
		}

	case errors.As(err, &httpErr):
		if httpErr.Code == http.StatusNotFound || httpErr.Code == http.StatusMethodNotAllowed {
			return http.StatusNotFound, echo.Map{"error": "Endpoint not found"}
		}
		return httpErr.Code, echo.Map{"error": fmt.Sprintf("%v", httpErr.Message)}

	default:
		return http.StatusInternalServerError, echo.Map{"error": "Internal server error"}
	}
}
