// Package api exposes the classification, rephrasing, and persistence
// surfaces over HTTP.
package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter wires all routes onto a gin engine.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.POST("/analyze/sentiment", h.AnalyzeSentiment)
		api.POST("/analyze/content", h.AnalyzeContent)
		api.POST("/rephrase", h.Rephrase)

		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", h.UpdateSettings)

		api.GET("/websites", h.ListWebsites)
		api.POST("/websites", h.CreateWebsite)
		api.DELETE("/websites/:id", h.DeleteWebsite)

		api.GET("/results", h.ListResults)
		api.POST("/results", h.CreateResult)
		api.DELETE("/results/:id", h.DeleteResult)
		api.DELETE("/results", h.ClearResults)
	}

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("[API] Request handled",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)))
	}
}
