// Package classify combines the lexicon matcher and the sentiment scorer
// into a single verdict per text unit.
package classify

import (
	"github.com/textshield/textshield/internal/lexicon"
	"github.com/textshield/textshield/internal/models"
	"github.com/textshield/textshield/internal/sentiment"
)

// MinClassifiableLength is enforced by callers before classification;
// shorter fragments are skipped entirely rather than scored.
const MinClassifiableLength = 10

// contentThresholds maps sensitivity to the minimum offensive match count.
// Medium and High are intentionally identical; this table ships as-is from
// the product and must not be "corrected" here.
var contentThresholds = map[models.Sensitivity]int{
	models.SensitivityLow:    2,
	models.SensitivityMedium: 1,
	models.SensitivityHigh:   1,
}

// ContentThreshold returns the match-count threshold for a sensitivity
// level. Unknown levels fall back to Medium.
func ContentThreshold(s models.Sensitivity) int {
	if t, ok := contentThresholds[s]; ok {
		return t
	}
	return contentThresholds[models.SensitivityMedium]
}

// IsOffensive reports whether text crosses the offensive match threshold
// for the given sensitivity.
func IsOffensive(text string, sensitivity models.Sensitivity) bool {
	return lexicon.CountOffensiveMatches(text) >= ContentThreshold(sensitivity)
}

// Classify produces the verdict for a text unit under the given settings.
// Offensive detection runs first and suppresses sentiment detection; with
// both axes disabled no scan happens at all.
func Classify(text string, settings models.UserSettings) models.VerdictType {
	if !settings.ContentDetection && !settings.SentimentAnalysis {
		return models.VerdictNone
	}

	if settings.ContentDetection && IsOffensive(text, settings.ContentSensitivity) {
		return models.VerdictWarning
	}

	if settings.SentimentAnalysis {
		result := sentiment.Score(text, sentiment.DefaultNegativeThreshold)
		if result.IsNegative {
			return models.VerdictNegative
		}
	}

	return models.VerdictNone
}
