// Package pipeline sequences classification and rephrasing for text units
// and turns flagged units into analysis-record drafts.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/textshield/textshield/internal/classify"
	"github.com/textshield/textshield/internal/models"
	"github.com/textshield/textshield/internal/rephrase"
)

// Pipeline is stateless per call; configuration arrives with every unit
// and the lexicons behind the classifier are fixed constants.
type Pipeline struct {
	engine *rephrase.Engine
}

func New(engine *rephrase.Engine) *Pipeline {
	return &Pipeline{engine: engine}
}

// Process classifies one text unit and, when flagged, rephrases it.
// It returns a record draft for the caller to persist, or nil when no
// action is needed: text too short, verdict none, rephrasing disabled, or
// rephrasing produced nothing usable.
func (p *Pipeline) Process(ctx context.Context, unit models.TextUnit, settings models.UserSettings) *models.AnalysisRecord {
	if len(unit.Text) < classify.MinClassifiableLength {
		return nil
	}

	verdict := classify.Classify(unit.Text, settings)
	if verdict == models.VerdictNone || !settings.ContentRephrasing {
		return nil
	}

	result := p.engine.Rephrase(ctx, unit.Text, verdict)
	if result.Rephrased == "" {
		return nil
	}

	slog.Debug("[Pipeline] Unit flagged",
		slog.String("unit_id", unit.ID),
		slog.String("verdict", string(verdict)),
		slog.String("domain", unit.Domain))

	return &models.AnalysisRecord{
		Type:             verdict,
		OriginalContent:  unit.Text,
		RephrasedContent: result.Rephrased,
		URL:              unit.URL,
		Domain:           unit.Domain,
	}
}

// ProcessBatch runs units through Process one at a time, matching the
// effectively serial per-page behavior and keeping the remote rephrase
// endpoint from being flooded. A failure in one unit never aborts its
// siblings; cancellation abandons the remaining units.
func (p *Pipeline) ProcessBatch(ctx context.Context, units []models.TextUnit, settings models.UserSettings) []models.AnalysisRecord {
	var records []models.AnalysisRecord

	for _, unit := range units {
		select {
		case <-ctx.Done():
			slog.Warn("[Pipeline] Batch canceled",
				slog.Int("remaining", len(units)-len(records)))
			return records
		default:
		}

		if record := p.safeProcess(ctx, unit, settings); record != nil {
			records = append(records, *record)
		}
	}

	return records
}

func (p *Pipeline) safeProcess(ctx context.Context, unit models.TextUnit, settings models.UserSettings) (record *models.AnalysisRecord) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[Pipeline] Recovered while processing unit",
				slog.String("unit_id", unit.ID),
				slog.Any("panic", r))
			record = nil
		}
	}()

	return p.Process(ctx, unit, settings)
}
