package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"mvdan.cc/xurls/v2"

	"github.com/hellothatsmoa/AI-News/apperr"
	"github.com/hellothatsmoa/AI-News/imagegen"
	"github.com/hellothatsmoa/AI-News/workflow"
)

var strictURL = xurls.Strict()

type summarizeRequest struct {
	Text string `json:"text"`
}

type generateRequest struct {
	Prompt   string                  `json:"prompt"`
	Width    int                     `json:"width"`
	Height   int                     `json:"height"`
	Steps    int                     `json:"steps"`
	Guidance float64                 `json:"guidance"`
	SyncMode *bool                   `json:"sync_mode"`
	Loras    []imagegen.StyleAdapter `json:"loras"`
}

type processRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (s *Server) handleSummarize(c echo.Context) error {
	var req summarizeRequest
	if err := c.Bind(&req); err != nil {
		return &apperr.Validation{Message: "invalid JSON body"}
	}
	if strings.TrimSpace(req.Text) == "" {
		return &apperr.Validation{Message: "text is required"}
	}

	summary, err := s.summarizer.SummarizeArticle(c.Request().Context(), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func (s *Server) handleGenerate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return &apperr.Validation{Message: "invalid JSON body"}
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return &apperr.Validation{Message: "prompt is required"}
	}

	res, err := s.images.Generate(c.Request().Context(), imagegen.GenerationRequest{
		Prompt:        req.Prompt,
		Width:         req.Width,
		Height:        req.Height,
		Steps:         req.Steps,
		GuidanceScale: req.Guidance,
		SyncMode:      req.SyncMode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) handleLoraGenerate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return &apperr.Validation{Message: "invalid JSON body"}
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return &apperr.Validation{Message: "prompt is required"}
	}
	if len(req.Loras) == 0 {
		return &apperr.Validation{Message: "loras is required"}
	}

	res, err := s.images.Generate(c.Request().Context(), imagegen.GenerationRequest{
		Prompt:        req.Prompt,
		StyleAdapters: req.Loras,
		Width:         req.Width,
		Height:        req.Height,
		Steps:         req.Steps,
		GuidanceScale: req.Guidance,
		SyncMode:      req.SyncMode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) handleProcessNewsURL(c echo.Context) error {
	var req processRequest
	if err := c.Bind(&req); err != nil {
		return &apperr.Validation{Message: "invalid JSON body"}
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		return &apperr.Validation{Message: "url is required"}
	}
	if !validNewsURL(url) {
		return &apperr.Validation{Message: "url is invalid"}
	}

	res, err := s.flow.Run(c.Request().Context(), url)
	if err != nil {
		s.log.Error("workflow failed", "url", url, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":  err.Error(),
			"status": workflow.StatusFailed,
		})
	}
	return c.JSON(http.StatusOK, res)
}

// validNewsURL accepts absolute http(s) URLs only.
func validNewsURL(raw string) bool {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return false
	}
	return strictURL.FindString(raw) == raw
}
