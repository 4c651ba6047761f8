package rephrase

import (
	"fmt"
	"regexp"

	"github.com/textshield/textshield/internal/models"
)

// substitution is one whole-word, case-insensitive rewrite rule. Rules run
// single-pass each, in table order, so overlapping patterns resolve the
// same way every time.
type substitution struct {
	pattern     *regexp.Regexp
	replacement string
}

type pair struct{ from, to string }

func compileSubstitutions(pairs []pair) []substitution {
	subs := make([]substitution, len(pairs))
	for i, p := range pairs {
		subs[i] = substitution{
			pattern:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p.from) + `\b`),
			replacement: p.to,
		}
	}
	return subs
}

// offensiveSubstitutions swaps offensive terms for neutral synonyms. Both
// singular and plural forms are listed where matching depends on it
// ("suck"/"sucks"); whole-word matching does no stemming.
var offensiveSubstitutions = compileSubstitutions([]pair{
	{"stupid", "misguided"},
	{"idiot", "person"},
	{"dumb", "uninformed"},
	{"moron", "individual"},
	{"hate", "dislike"},
	{"suck", "is inadequate"},
	{"sucks", "is inadequate"},
	{"crap", "poor quality"},
	{"jerk", "difficult person"},
	{"fool", "mistaken person"},
	{"loser", "struggling person"},
	{"ass", "person"},
	{"damn", "darn"},
	{"hell", "heck"},
})

// negativeSubstitutions softens common negative phrasings.
var negativeSubstitutions = compileSubstitutions([]pair{
	{"this is terrible", "this could be improved"},
	{"i hate this", "I'm not fond of this"},
	{"worst thing ever", "disappointing experience"},
	{"complete disaster", "significant issue"},
	{"absolutely useless", "not currently effective"},
	{"never works", "inconsistently functions"},
	{"waste of time", "not the best use of time"},
	{"waste of money", "questionable value"},
})

// misinfoSubstitutions hedges absolute claims.
var misinfoSubstitutions = compileSubstitutions([]pair{
	{"everyone knows", "some believe"},
	{"scientists have proven", "some research suggests"},
	{"undeniable proof", "evidence that suggests"},
	{"definitely causes", "may be associated with"},
	{"always", "sometimes"},
	{"never", "rarely"},
	{"100% certain", "possible"},
	{"guaranteed", "potential"},
})

// balanceWrapLimit is the length under which a rephrased negative text gets
// wrapped in the balancing template.
const balanceWrapLimit = 100

func applySubstitutions(text string, subs []substitution) string {
	for _, s := range subs {
		text = s.pattern.ReplaceAllString(text, s.replacement)
	}
	return text
}

// RuleBased rewrites text deterministically for the given verdict type.
// Same input always yields the same output, and it never fails.
func RuleBased(text string, verdictType models.VerdictType) models.RephraseResult {
	rephrased := text

	switch verdictType {
	case models.VerdictWarning:
		rephrased = applySubstitutions(rephrased, offensiveSubstitutions)

	case models.VerdictNegative:
		rephrased = applySubstitutions(rephrased, negativeSubstitutions)
		// Negative content often carries offensive terms as well.
		rephrased = applySubstitutions(rephrased, offensiveSubstitutions)

		if len(rephrased) < balanceWrapLimit {
			rephrased = fmt.Sprintf("While there are challenges with %s, there may also be opportunities for improvement.", rephrased)
		}

	case models.VerdictInfo:
		rephrased = applySubstitutions(rephrased, misinfoSubstitutions)
		rephrased = fmt.Sprintf("This perspective is one viewpoint: %s. Consider consulting multiple sources.", rephrased)
	}

	return models.RephraseResult{
		Original:  text,
		Rephrased: rephrased,
		Type:      verdictType,
	}
}
