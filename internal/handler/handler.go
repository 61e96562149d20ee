// Package handler exposes the HTTP API: analysis, history, chat and
// health.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FranksOps/marketscope/internal/chat"
	"github.com/FranksOps/marketscope/internal/model"
	"github.com/FranksOps/marketscope/internal/pipeline"
	"github.com/FranksOps/marketscope/internal/storage"
)

// Analyzer runs one full analysis for a business description.
type Analyzer interface {
	Run(ctx context.Context, query string) (*model.Report, error)
}

// Asker answers follow-up questions over the report history.
type Asker interface {
	Ask(ctx context.Context, message string) (string, error)
}

// APIHandler serves the public endpoints.
type APIHandler struct {
	analyzer Analyzer
	asker    Asker
	store    storage.Backend
}

// NewAPIHandler creates the handler set.
func NewAPIHandler(analyzer Analyzer, asker Asker, store storage.Backend) *APIHandler {
	return &APIHandler{analyzer: analyzer, asker: asker, store: store}
}

// Register attaches all routes to the router.
func (h *APIHandler) Register(r *gin.Engine) {
	r.POST("/analyze", h.Analyze)
	r.GET("/history", h.GetHistory)
	r.POST("/chat", h.Chat)
	r.GET("/health", h.GetHealth)
}

func (h *APIHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	report, err := h.analyzer.Run(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoKeywords) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No usable keywords in query"})
			return
		}
		slog.Error("analysis failed", "error", err, "query", req.Query)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *APIHandler) GetHistory(c *gin.Context) {
	limit := getQueryLimit(c)

	reports, err := h.store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		slog.Error("error fetching history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
		return
	}
	if reports == nil {
		reports = []*model.Report{}
	}

	c.JSON(http.StatusOK, HistoryResponse{
		Reports: reports,
		Total:   len(reports),
	})
}

func (h *APIHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	answer, err := h.asker.Ask(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}
		slog.Error("chat failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat failed"})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: answer})
}

func (h *APIHandler) GetHealth(c *gin.Context) {
	if _, err := h.store.ListRecent(c.Request.Context(), 1); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"storage": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"storage": "connected",
	})
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", raw)
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
