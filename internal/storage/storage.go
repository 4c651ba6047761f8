// Package storage defines the persistence interface and its SQLite
// implementation.
package storage

import (
	"context"
	"errors"

	"github.com/textshield/textshield/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("storage: not found")

// Storage is the interface for all persistence operations.
type Storage interface {
	GetUserSettings(ctx context.Context) (*models.UserSettings, error)
	UpdateUserSettings(ctx context.Context, settings *models.UserSettings) error

	ListProtectedWebsites(ctx context.Context) ([]models.ProtectedWebsite, error)
	CreateProtectedWebsite(ctx context.Context, website *models.ProtectedWebsite) error
	DeleteProtectedWebsite(ctx context.Context, id int64) error

	ListAnalysisResults(ctx context.Context) ([]models.AnalysisRecord, error)
	CreateAnalysisResult(ctx context.Context, record *models.AnalysisRecord) error
	DeleteAnalysisResult(ctx context.Context, id int64) error
	ClearAnalysisResults(ctx context.Context) error

	Close() error
}
