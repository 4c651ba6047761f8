package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/textshield/textshield/internal/models"
	"github.com/textshield/textshield/internal/rephrase"
	"github.com/textshield/textshield/internal/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewRouter(NewHandler(store, rephrase.NewEngine(nil)))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeSentimentEndpoint(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/analyze/sentiment", gin.H{
		"text": "this is terrible awful horrible bad",
	})
	req.Equal(http.StatusOK, w.Code)

	var result models.SentimentResult
	req.NoError(json.Unmarshal(w.Body.Bytes(), &result))
	req.Equal(models.SentimentLabelNegative, result.Label)
	req.True(result.IsNegative)
	req.Zero(result.Score)
}

func TestAnalyzeSentimentValidation(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing text", gin.H{}},
		{"empty text", gin.H{"text": ""}},
		{"threshold above range", gin.H{"text": "some long enough text", "threshold": 1.5}},
		{"threshold below range", gin.H{"text": "some long enough text", "threshold": -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/analyze/sentiment", tt.body)
			req.Equal(http.StatusBadRequest, w.Code, tt.name)
			req.Contains(w.Body.String(), "Invalid request data", tt.name)
		})
	}
}

func TestAnalyzeSentimentCustomThreshold(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/analyze/sentiment", gin.H{
		"text":      "banana banana banana banana",
		"threshold": 0.6,
	})
	req.Equal(http.StatusOK, w.Code)

	var result models.SentimentResult
	req.NoError(json.Unmarshal(w.Body.Bytes(), &result))
	req.Equal(models.SentimentLabelNeutral, result.Label)
	req.True(result.IsNegative)
}

func TestAnalyzeContentEndpoint(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/analyze/content", gin.H{
		"text":        "I hate this stupid product, it sucks",
		"sensitivity": 2,
	})
	req.Equal(http.StatusOK, w.Code)

	var result struct {
		Offensive bool `json:"offensive"`
		Matches   int  `json:"matches"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &result))
	req.True(result.Offensive)
	req.Equal(2, result.Matches)
}

func TestRephraseEndpoint(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	t.Run("warning type", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/rephrase", gin.H{
			"text": "I hate this stupid product, it sucks",
			"type": "warning",
		})
		req.Equal(http.StatusOK, w.Code)

		var result models.RephraseResult
		req.NoError(json.Unmarshal(w.Body.Bytes(), &result))
		req.Equal("I dislike this misguided product, it is inadequate", result.Rephrased)
		req.Equal(models.VerdictWarning, result.Type)
	})

	t.Run("type defaults to negative", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/rephrase", gin.H{
			"text": "this is terrible",
		})
		req.Equal(http.StatusOK, w.Code)

		var result models.RephraseResult
		req.NoError(json.Unmarshal(w.Body.Bytes(), &result))
		req.Equal(models.VerdictNegative, result.Type)
		req.Contains(result.Rephrased, "While there are challenges with")
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/rephrase", gin.H{
			"text": "this is terrible",
			"type": "sarcastic",
		})
		req.Equal(http.StatusBadRequest, w.Code)
	})
}

func TestSettingsEndpoints(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/settings", nil)
	req.Equal(http.StatusOK, w.Code)

	var settings models.UserSettings
	req.NoError(json.Unmarshal(w.Body.Bytes(), &settings))
	req.True(settings.ContentDetection)

	w = doJSON(t, router, http.MethodPut, "/api/settings", gin.H{
		"content_detection":   false,
		"content_sensitivity": 3,
	})
	req.Equal(http.StatusOK, w.Code)

	req.NoError(json.Unmarshal(w.Body.Bytes(), &settings))
	req.False(settings.ContentDetection)
	req.Equal(models.SensitivityHigh, settings.ContentSensitivity)
	// Untouched fields keep their stored values.
	req.True(settings.SentimentAnalysis)

	w = doJSON(t, router, http.MethodPut, "/api/settings", gin.H{
		"content_sensitivity": 9,
	})
	req.Equal(http.StatusBadRequest, w.Code)
}

func TestWebsiteEndpoints(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/websites", nil)
	req.Equal(http.StatusOK, w.Code)

	var websites []models.ProtectedWebsite
	req.NoError(json.Unmarshal(w.Body.Bytes(), &websites))
	req.Len(websites, 3)

	w = doJSON(t, router, http.MethodPost, "/api/websites", gin.H{
		"domain":   "news.example.com",
		"features": gin.H{"contentDetection": true},
	})
	req.Equal(http.StatusCreated, w.Code)

	var created models.ProtectedWebsite
	req.NoError(json.Unmarshal(w.Body.Bytes(), &created))
	req.NotZero(created.ID)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/websites/%d", created.ID), nil)
	req.Equal(http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/websites/%d", created.ID), nil)
	req.Equal(http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/websites", gin.H{
		"domain": "not a hostname!",
		"features": gin.H{
			"contentDetection": true,
		},
	})
	req.Equal(http.StatusBadRequest, w.Code)
}

func TestResultEndpoints(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/results", gin.H{
		"type":              "warning",
		"original_content":  "I hate this stupid product",
		"rephrased_content": "I dislike this misguided product",
		"url":               "https://example.com/a",
		"domain":            "example.com",
	})
	req.Equal(http.StatusCreated, w.Code)

	var created models.AnalysisRecord
	req.NoError(json.Unmarshal(w.Body.Bytes(), &created))
	req.NotZero(created.ID)

	w = doJSON(t, router, http.MethodGet, "/api/results", nil)
	req.Equal(http.StatusOK, w.Code)

	var records []models.AnalysisRecord
	req.NoError(json.Unmarshal(w.Body.Bytes(), &records))
	req.Len(records, 1)

	w = doJSON(t, router, http.MethodPost, "/api/results", gin.H{
		"type":             "bogus",
		"original_content": "x",
		"url":              "https://example.com",
		"domain":           "example.com",
	})
	req.Equal(http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/results/%d", created.ID), nil)
	req.Equal(http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/results/%d", created.ID), nil)
	req.Equal(http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/results", nil)
	req.Equal(http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/results", nil)
	req.Equal(http.StatusOK, w.Code)
	req.Equal("[]", w.Body.String())
}
