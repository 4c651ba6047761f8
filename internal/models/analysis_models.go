package models

import "time"

// AnalysisRecord is the persisted outcome of a flagged-and-rephrased text
// unit. ID and Timestamp are assigned by storage; records are immutable
// once written.
type AnalysisRecord struct {
	ID               int64       `json:"id"`
	Type             VerdictType `json:"type"`
	OriginalContent  string      `json:"original_content"`
	RephrasedContent string      `json:"rephrased_content"`
	URL              string      `json:"url"`
	Domain           string      `json:"domain"`
	Timestamp        time.Time   `json:"timestamp"`
}
