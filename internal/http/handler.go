package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/checkbook-insights/internal/analysis"
	"github.com/nurpe/checkbook-insights/internal/model"
	"github.com/nurpe/checkbook-insights/internal/service"
)

// Insights is the part of the insights service the dashboard needs.
type Insights interface {
	Loaded() bool
	Policy() analysis.Policy
	Insights() (model.Insights, error)
	View(name string, query service.ViewQuery) (any, error)
	Chart(name string, query service.ViewQuery) ([]byte, error)
	ExportXLSX() (*service.ExportResult, error)
	ExportPDF(ctx context.Context) (*service.ExportResult, error)
}

type Handler struct {
	insights Insights
	log      zerolog.Logger
}

func NewHandler(insights Insights, log zerolog.Logger) *Handler {
	return &Handler{insights: insights, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/", h.dashboard)
	router.GET("/healthz", h.health)

	api := router.Group("/api")
	api.Use(authMiddleware)
	api.GET("/summary", h.summary)
	api.GET("/views/:name", h.view)
	api.GET("/charts/:file", h.chart)
	api.GET("/export/xlsx", h.exportXLSX)
	api.GET("/export/pdf", h.exportPDF)
}

func (h *Handler) health(c *gin.Context) {
	loaded := h.insights.Loaded()
	status := http.StatusOK
	if !loaded {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "loaded": loaded})
}

func (h *Handler) summary(c *gin.Context) {
	insights, err := h.insights.Insights()
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, insights.Summary)
}

func (h *Handler) view(c *gin.Context) {
	name := strings.ToLower(c.Param("name"))
	query, err := h.parseQuery(c, name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	payload, err := h.insights.View(name, query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "data": payload})
}

func (h *Handler) chart(c *gin.Context) {
	file := strings.ToLower(c.Param("file"))
	name, ok := strings.CutSuffix(file, ".png")
	if !ok {
		h.handleError(c, service.ErrNotFound)
		return
	}
	query, err := h.parseQuery(c, name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	content, err := h.insights.Chart(name, query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", content)
}

func (h *Handler) exportXLSX(c *gin.Context) {
	result, err := h.insights.ExportXLSX()
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func (h *Handler) exportPDF(c *gin.Context) {
	result, err := h.insights.ExportPDF(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// parseQuery reads the dashboard filters. The contract-code view defaults to
// the shorter dashboard list when top is absent.
func (h *Handler) parseQuery(c *gin.Context, name string) (service.ViewQuery, error) {
	query := service.ViewQuery{Category: strings.TrimSpace(c.Query("category"))}
	if raw := strings.TrimSpace(c.Query("top")); raw != "" {
		top, err := strconv.Atoi(raw)
		if err != nil || top <= 0 {
			return query, service.ErrInvalidInput
		}
		query.Top = top
	} else if name == model.ViewBQ4 {
		query.Top = h.insights.Policy().DashboardContractCodes
	}
	return query, nil
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
