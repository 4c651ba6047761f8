package models

import "time"

// UserSettings is the singleton settings row consulted by the pipeline and
// exposed over the API. Sensitivities are 1=Low, 2=Medium, 3=High.
type UserSettings struct {
	ID                   int64       `json:"id"`
	ContentDetection     bool        `json:"content_detection"`
	SentimentAnalysis    bool        `json:"sentiment_analysis"`
	ContentRephrasing    bool        `json:"content_rephrasing"`
	RealTimeScraping     bool        `json:"real_time_scraping"`
	ContentSensitivity   Sensitivity `json:"content_sensitivity"`
	SentimentSensitivity Sensitivity `json:"sentiment_sensitivity"`
	BackgroundProcessing bool        `json:"background_processing"`
	AnalyticsSharing     bool        `json:"analytics_sharing"`
	Notifications        bool        `json:"notifications"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// DefaultUserSettings mirrors the seed row created on first start.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		ContentDetection:     true,
		SentimentAnalysis:    true,
		ContentRephrasing:    true,
		RealTimeScraping:     true,
		ContentSensitivity:   SensitivityMedium,
		SentimentSensitivity: SensitivityMedium,
		BackgroundProcessing: true,
		AnalyticsSharing:     true,
		Notifications:        true,
	}
}

// ProtectedWebsite is a domain the extension actively scans, with
// per-domain feature toggles stored as a JSON blob.
type ProtectedWebsite struct {
	ID        int64           `json:"id"`
	Domain    string          `json:"domain"`
	Features  map[string]bool `json:"features"`
	CreatedAt time.Time       `json:"created_at"`
}
