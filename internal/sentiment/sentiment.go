// Package sentiment scores text against fixed positive/negative lexicons.
// The lexicon score is authoritative; a VADER pass over the normalized text
// provides an auxiliary confidence signal and never changes the verdict.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"

	"github.com/textshield/textshield/internal/lexicon"
	"github.com/textshield/textshield/internal/models"
)

const (
	// DefaultNegativeThreshold is the isNegative cutoff when the caller
	// supplies none.
	DefaultNegativeThreshold = 0.5

	// MinAnalyzableLength is the gate below which text is treated as
	// neutral without scanning.
	MinAnalyzableLength = 10

	labelPositiveBound = 0.6
	labelNegativeBound = 0.4

	vaderPositiveBound = 0.20
	vaderNegativeBound = -0.20
)

var (
	wordSplitter = regexp.MustCompile(`\W+`)
	analyzer     = govader.NewSentimentIntensityAnalyzer()
)

// Score analyzes text and returns a SentimentResult. threshold is the
// isNegative cutoff in [0,1]; label boundaries are fixed at 0.4/0.6 and do
// not move with it. Pure with respect to its inputs.
func Score(text string, threshold float64) models.SentimentResult {
	if len(text) < MinAnalyzableLength {
		return neutralResult()
	}

	words := splitWords(text)
	if len(words) == 0 {
		// All-punctuation input; nothing to score.
		return neutralResult()
	}

	negativeSet := lexicon.NegativeSet()
	positiveSet := lexicon.PositiveSet()

	var negativeCount, positiveCount int
	for _, word := range words {
		if _, ok := negativeSet[word]; ok {
			negativeCount++
		} else if _, ok := positiveSet[word]; ok {
			positiveCount++
		}
	}

	totalWords := float64(len(words))
	negativeScore := float64(negativeCount) / totalWords
	positiveScore := float64(positiveCount) / totalWords

	score := clamp01(0.5 + (positiveScore-negativeScore)*2)
	label := labelFor(score)

	return models.SentimentResult{
		Score:      score,
		Label:      label,
		IsNegative: score < threshold,
		Confidence: confidenceFor(text, label),
	}
}

func neutralResult() models.SentimentResult {
	return models.SentimentResult{
		Score:      0.5,
		Label:      models.SentimentLabelNeutral,
		IsNegative: false,
		Confidence: 1,
	}
}

func splitWords(text string) []string {
	parts := wordSplitter.Split(strings.ToLower(text), -1)
	words := parts[:0]
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

func labelFor(score float64) string {
	switch {
	case score > labelPositiveBound:
		return models.SentimentLabelPositive
	case score < labelNegativeBound:
		return models.SentimentLabelNegative
	default:
		return models.SentimentLabelNeutral
	}
}

// confidenceFor compares the lexicon label against VADER's reading of the
// normalized text: 1 on agreement, 0.5 when one side is neutral, 0 when
// they point in opposite directions.
func confidenceFor(text, label string) float64 {
	compound := analyzer.PolarityScores(NormalizeText(text)).Compound

	var vaderLabel string
	switch {
	case compound >= vaderPositiveBound:
		vaderLabel = models.SentimentLabelPositive
	case compound <= vaderNegativeBound:
		vaderLabel = models.SentimentLabelNegative
	default:
		vaderLabel = models.SentimentLabelNeutral
	}

	switch {
	case vaderLabel == label:
		return 1
	case vaderLabel == models.SentimentLabelNeutral || label == models.SentimentLabelNeutral:
		return 0.5
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
