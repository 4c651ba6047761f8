package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/textshield/textshield/internal/classify"
	"github.com/textshield/textshield/internal/lexicon"
	"github.com/textshield/textshield/internal/models"
	"github.com/textshield/textshield/internal/rephrase"
	"github.com/textshield/textshield/internal/sentiment"
	"github.com/textshield/textshield/internal/storage"
)

// Handler carries the dependencies shared by all routes.
type Handler struct {
	store  storage.Storage
	engine *rephrase.Engine
}

func NewHandler(store storage.Storage, engine *rephrase.Engine) *Handler {
	return &Handler{store: store, engine: engine}
}

type sentimentRequest struct {
	Text      string   `json:"text" binding:"required,min=1"`
	Threshold *float64 `json:"threshold" binding:"omitempty,gte=0,lte=1"`
}

type contentRequest struct {
	Text        string `json:"text" binding:"required,min=1"`
	Sensitivity int    `json:"sensitivity" binding:"omitempty,min=1,max=3"`
}

type rephraseRequest struct {
	Text string `json:"text" binding:"required,min=1"`
	Type string `json:"type" binding:"omitempty,oneof=warning negative info"`
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Invalid request data",
		"details": err.Error(),
	})
}

func serverError(c *gin.Context, message string, err error) {
	slog.Error("[API] "+message, slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AnalyzeSentiment scores text against the sentiment lexicons.
func (h *Handler) AnalyzeSentiment(c *gin.Context) {
	var req sentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	threshold := sentiment.DefaultNegativeThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	c.JSON(http.StatusOK, sentiment.Score(req.Text, threshold))
}

// AnalyzeContent runs the offensive-content check at a given sensitivity.
func (h *Handler) AnalyzeContent(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	sensitivity := models.Sensitivity(req.Sensitivity)
	if req.Sensitivity == 0 {
		sensitivity = models.SensitivityMedium
	}

	matches := lexicon.CountOffensiveMatches(req.Text)
	c.JSON(http.StatusOK, gin.H{
		"offensive": matches >= classify.ContentThreshold(sensitivity),
		"matches":   matches,
	})
}

// Rephrase produces replacement text for the given verdict type.
func (h *Handler) Rephrase(c *gin.Context) {
	var req rephraseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	verdictType := models.VerdictType(req.Type)
	if verdictType == models.VerdictNone {
		verdictType = models.VerdictNegative
	}

	c.JSON(http.StatusOK, h.engine.Rephrase(c.Request.Context(), req.Text, verdictType))
}

// GetSettings returns the singleton settings row.
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.store.GetUserSettings(c.Request.Context())
	if err != nil {
		serverError(c, "Failed to fetch settings", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type updateSettingsRequest struct {
	ContentDetection     *bool `json:"content_detection"`
	SentimentAnalysis    *bool `json:"sentiment_analysis"`
	ContentRephrasing    *bool `json:"content_rephrasing"`
	RealTimeScraping     *bool `json:"real_time_scraping"`
	ContentSensitivity   *int  `json:"content_sensitivity" binding:"omitempty,min=1,max=3"`
	SentimentSensitivity *int  `json:"sentiment_sensitivity" binding:"omitempty,min=1,max=3"`
	BackgroundProcessing *bool `json:"background_processing"`
	AnalyticsSharing     *bool `json:"analytics_sharing"`
	Notifications        *bool `json:"notifications"`
}

// UpdateSettings merges the provided fields into the stored settings.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	settings, err := h.store.GetUserSettings(c.Request.Context())
	if err != nil {
		serverError(c, "Failed to fetch settings", err)
		return
	}

	applyIfSet := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	applyIfSet(&settings.ContentDetection, req.ContentDetection)
	applyIfSet(&settings.SentimentAnalysis, req.SentimentAnalysis)
	applyIfSet(&settings.ContentRephrasing, req.ContentRephrasing)
	applyIfSet(&settings.RealTimeScraping, req.RealTimeScraping)
	applyIfSet(&settings.BackgroundProcessing, req.BackgroundProcessing)
	applyIfSet(&settings.AnalyticsSharing, req.AnalyticsSharing)
	applyIfSet(&settings.Notifications, req.Notifications)
	if req.ContentSensitivity != nil {
		settings.ContentSensitivity = models.Sensitivity(*req.ContentSensitivity)
	}
	if req.SentimentSensitivity != nil {
		settings.SentimentSensitivity = models.Sensitivity(*req.SentimentSensitivity)
	}

	if err := h.store.UpdateUserSettings(c.Request.Context(), settings); err != nil {
		serverError(c, "Failed to update settings", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ListWebsites returns the protected-website list.
func (h *Handler) ListWebsites(c *gin.Context) {
	websites, err := h.store.ListProtectedWebsites(c.Request.Context())
	if err != nil {
		serverError(c, "Failed to fetch websites", err)
		return
	}
	if websites == nil {
		websites = []models.ProtectedWebsite{}
	}
	c.JSON(http.StatusOK, websites)
}

type websiteRequest struct {
	Domain   string          `json:"domain" binding:"required,hostname"`
	Features map[string]bool `json:"features" binding:"required"`
}

// CreateWebsite adds a domain to the protected-website list.
func (h *Handler) CreateWebsite(c *gin.Context) {
	var req websiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	website := models.ProtectedWebsite{Domain: req.Domain, Features: req.Features}
	if err := h.store.CreateProtectedWebsite(c.Request.Context(), &website); err != nil {
		serverError(c, "Failed to create website", err)
		return
	}
	c.JSON(http.StatusCreated, website)
}

// DeleteWebsite removes a protected website by ID.
func (h *Handler) DeleteWebsite(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		invalidRequest(c, err)
		return
	}

	err = h.store.DeleteProtectedWebsite(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Website not found"})
		return
	}
	if err != nil {
		serverError(c, "Failed to delete website", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListResults returns stored analysis records, newest first.
func (h *Handler) ListResults(c *gin.Context) {
	records, err := h.store.ListAnalysisResults(c.Request.Context())
	if err != nil {
		serverError(c, "Failed to fetch results", err)
		return
	}
	if records == nil {
		records = []models.AnalysisRecord{}
	}
	c.JSON(http.StatusOK, records)
}

type resultRequest struct {
	Type             string `json:"type" binding:"required,oneof=warning negative info"`
	OriginalContent  string `json:"original_content" binding:"required"`
	RephrasedContent string `json:"rephrased_content"`
	URL              string `json:"url" binding:"required"`
	Domain           string `json:"domain" binding:"required"`
}

// CreateResult persists an analysis record produced by a collaborator.
func (h *Handler) CreateResult(c *gin.Context) {
	var req resultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	record := models.AnalysisRecord{
		Type:             models.VerdictType(req.Type),
		OriginalContent:  req.OriginalContent,
		RephrasedContent: req.RephrasedContent,
		URL:              req.URL,
		Domain:           req.Domain,
	}
	if err := h.store.CreateAnalysisResult(c.Request.Context(), &record); err != nil {
		serverError(c, "Failed to store result", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// DeleteResult removes one analysis record by ID.
func (h *Handler) DeleteResult(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		invalidRequest(c, err)
		return
	}

	err = h.store.DeleteAnalysisResult(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Result not found"})
		return
	}
	if err != nil {
		serverError(c, "Failed to delete result", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearResults removes every stored record.
func (h *Handler) ClearResults(c *gin.Context) {
	if err := h.store.ClearAnalysisResults(c.Request.Context()); err != nil {
		serverError(c, "Failed to clear results", err)
		return
	}
	c.Status(http.StatusNoContent)
}
