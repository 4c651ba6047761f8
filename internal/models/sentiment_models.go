package models

type SentimentResult struct {
	Score      float64 `json:"score"`
	Label      string  `json:"label"`
	IsNegative bool    `json:"is_negative"`
	// Confidence is the agreement between the lexicon score and the
	// auxiliary VADER signal. Informational only.
	Confidence float64 `json:"confidence"`
}

const (
	SentimentLabelPositive = "positive"
	SentimentLabelNegative = "negative"
	SentimentLabelNeutral  = "neutral"
)
