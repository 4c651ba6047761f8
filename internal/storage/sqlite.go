package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"github.com/textshield/textshield/internal/models"
	"github.com/textshield/textshield/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// defaultWebsites seeds the protected-website list on first start.
var defaultWebsites = []string{"reddit.com", "twitter.com", "facebook.com"}

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn, runs pending migrations, and
// seeds default settings and protected websites when the tables are empty.
func NewSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection keeps writers from tripping over SQLITE_BUSY and
	// keeps :memory: databases from splitting across pool connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.seedDefaults(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) seedDefaults(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_settings`).Scan(&count); err != nil {
		return fmt.Errorf("count settings: %w", err)
	}
	if count == 0 {
		defaults := models.DefaultUserSettings()
		if err := s.insertUserSettings(ctx, &defaults); err != nil {
			return err
		}
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM protected_websites`).Scan(&count); err != nil {
		return fmt.Errorf("count websites: %w", err)
	}
	if count == 0 {
		for _, domain := range defaultWebsites {
			website := models.ProtectedWebsite{
				Domain: domain,
				Features: map[string]bool{
					"contentDetection":  true,
					"sentimentAnalysis": true,
					"contentRephrasing": true,
				},
			}
			if err := s.CreateProtectedWebsite(ctx, &website); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *SQLite) insertUserSettings(ctx context.Context, settings *models.UserSettings) error {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO user_settings
		 (content_detection, sentiment_analysis, content_rephrasing, real_time_scraping,
		  content_sensitivity, sentiment_sensitivity, background_processing,
		  analytics_sharing, notifications, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		boolToInt(settings.ContentDetection), boolToInt(settings.SentimentAnalysis),
		boolToInt(settings.ContentRephrasing), boolToInt(settings.RealTimeScraping),
		int(settings.ContentSensitivity), int(settings.SentimentSensitivity),
		boolToInt(settings.BackgroundProcessing), boolToInt(settings.AnalyticsSharing),
		boolToInt(settings.Notifications), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert settings: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	settings.ID = id
	settings.CreatedAt, _ = time.Parse(timeLayout, now)
	settings.UpdatedAt = settings.CreatedAt
	return nil
}

// GetUserSettings returns the singleton settings row.
func (s *SQLite) GetUserSettings(ctx context.Context) (*models.UserSettings, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, content_detection, sentiment_analysis, content_rephrasing,
		        real_time_scraping, content_sensitivity, sentiment_sensitivity,
		        background_processing, analytics_sharing, notifications,
		        created_at, updated_at
		 FROM user_settings ORDER BY id LIMIT 1`)

	var st models.UserSettings
	var detection, sentimentOn, rephrasing, scraping, background, analytics, notifications int
	var contentSens, sentimentSens int
	var created, updated string
	err := row.Scan(&st.ID, &detection, &sentimentOn, &rephrasing, &scraping,
		&contentSens, &sentimentSens, &background, &analytics, &notifications,
		&created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan settings: %w", err)
	}

	st.ContentDetection = detection == 1
	st.SentimentAnalysis = sentimentOn == 1
	st.ContentRephrasing = rephrasing == 1
	st.RealTimeScraping = scraping == 1
	st.ContentSensitivity = models.Sensitivity(contentSens)
	st.SentimentSensitivity = models.Sensitivity(sentimentSens)
	st.BackgroundProcessing = background == 1
	st.AnalyticsSharing = analytics == 1
	st.Notifications = notifications == 1
	st.CreatedAt, _ = time.Parse(timeLayout, created)
	st.UpdatedAt, _ = time.Parse(timeLayout, updated)
	return &st, nil
}

// UpdateUserSettings persists changes to the settings row identified by
// settings.ID and refreshes UpdatedAt.
func (s *SQLite) UpdateUserSettings(ctx context.Context, settings *models.UserSettings) error {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`UPDATE user_settings SET
		 content_detection = ?, sentiment_analysis = ?, content_rephrasing = ?,
		 real_time_scraping = ?, content_sensitivity = ?, sentiment_sensitivity = ?,
		 background_processing = ?, analytics_sharing = ?, notifications = ?,
		 updated_at = ?
		 WHERE id = ?`,
		boolToInt(settings.ContentDetection), boolToInt(settings.SentimentAnalysis),
		boolToInt(settings.ContentRephrasing), boolToInt(settings.RealTimeScraping),
		int(settings.ContentSensitivity), int(settings.SentimentSensitivity),
		boolToInt(settings.BackgroundProcessing), boolToInt(settings.AnalyticsSharing),
		boolToInt(settings.Notifications), now, settings.ID,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	settings.UpdatedAt, _ = time.Parse(timeLayout, now)
	return nil
}

// ListProtectedWebsites returns all protected websites.
func (s *SQLite) ListProtectedWebsites(ctx context.Context) ([]models.ProtectedWebsite, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, domain, features, created_at FROM protected_websites ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query websites: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var websites []models.ProtectedWebsite
	for rows.Next() {
		var w models.ProtectedWebsite
		var features, created string
		if err := rows.Scan(&w.ID, &w.Domain, &features, &created); err != nil {
			return nil, fmt.Errorf("scan website: %w", err)
		}
		if err := json.Unmarshal([]byte(features), &w.Features); err != nil {
			return nil, fmt.Errorf("decode features: %w", err)
		}
		w.CreatedAt, _ = time.Parse(timeLayout, created)
		websites = append(websites, w)
	}
	return websites, rows.Err()
}

// CreateProtectedWebsite inserts a website and populates its ID and CreatedAt.
func (s *SQLite) CreateProtectedWebsite(ctx context.Context, website *models.ProtectedWebsite) error {
	features, err := json.Marshal(website.Features)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO protected_websites (domain, features, created_at) VALUES (?, ?, ?)`,
		website.Domain, string(features), now,
	)
	if err != nil {
		return fmt.Errorf("insert website: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	website.ID = id
	website.CreatedAt, _ = time.Parse(timeLayout, now)
	return nil
}

// DeleteProtectedWebsite removes a website by ID.
func (s *SQLite) DeleteProtectedWebsite(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM protected_websites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete website: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAnalysisResults returns all analysis records, newest first.
func (s *SQLite) ListAnalysisResults(ctx context.Context) ([]models.AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, original_content, rephrased_content, url, domain, timestamp
		 FROM analysis_results ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.AnalysisRecord
	for rows.Next() {
		var r models.AnalysisRecord
		var recordType, ts string
		var rephrased sql.NullString
		if err := rows.Scan(&r.ID, &recordType, &r.OriginalContent, &rephrased, &r.URL, &r.Domain, &ts); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Type = models.VerdictType(recordType)
		if rephrased.Valid {
			r.RephrasedContent = rephrased.String
		}
		r.Timestamp, _ = time.Parse(timeLayout, ts)
		records = append(records, r)
	}
	return records, rows.Err()
}

// CreateAnalysisResult inserts a record and populates its ID and Timestamp.
// Records are immutable once created; there is no update path.
func (s *SQLite) CreateAnalysisResult(ctx context.Context, record *models.AnalysisRecord) error {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO analysis_results (type, original_content, rephrased_content, url, domain, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(record.Type), record.OriginalContent, record.RephrasedContent,
		record.URL, record.Domain, now,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	record.ID = id
	record.Timestamp, _ = time.Parse(timeLayout, now)
	return nil
}

// DeleteAnalysisResult removes a record by ID.
func (s *SQLite) DeleteAnalysisResult(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analysis_results WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearAnalysisResults removes every stored record.
func (s *SQLite) ClearAnalysisResults(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM analysis_results`); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
