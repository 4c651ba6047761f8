// Package lexicon holds the fixed word lists used across the detection
// pipeline and implements whole-word matching against the offensive list.
// All lists are process-wide constants; nothing here mutates at runtime.
package lexicon

import "regexp"

// offensiveWords is the content-detection list. Matching is whole-word and
// case-insensitive; every occurrence counts, not just distinct words.
var offensiveWords = []string{
	"hate", "stupid", "idiot", "dumb", "moron", "loser",
	"fool", "jerk", "ass", "damn", "hell", "crap", "suck",
}

// negativeWords feeds the sentiment scorer.
var negativeWords = []string{
	"angry", "hate", "terrible", "awful", "horrible", "bad", "worst",
	"stupid", "dumb", "idiot", "moron", "jerk", "ugly", "nasty",
	"disgusting", "pathetic", "miserable", "useless", "worthless",
	"disaster", "failure", "failed", "disappointing", "disappointed",
	"sucks", "suck", "damn", "hell", "crap", "shit", "fuck",
	"kill", "die", "death", "dead", "hurt", "pain", "suffer",
	"cruel", "evil", "vile", "wicked", "sick", "gross", "creepy",
	"scared", "afraid", "fear", "worry", "anxious", "stress", "sad",
	"depressed", "depressing", "gloomy", "misery", "despair", "hopeless",
}

// positiveWords feeds the sentiment scorer.
var positiveWords = []string{
	"good", "great", "excellent", "amazing", "wonderful", "fantastic",
	"terrific", "outstanding", "exceptional", "incredible", "brilliant",
	"superb", "fabulous", "perfect", "awesome", "impressive", "remarkable",
	"love", "happy", "joy", "joyful", "delighted", "pleased", "glad",
	"satisfied", "content", "proud", "excited", "thrilled", "enthusiastic",
	"positive", "optimistic", "hopeful", "encouraging", "inspired", "inspiring",
	"kind", "caring", "generous", "helpful", "supportive", "thoughtful",
	"beautiful", "pretty", "handsome", "lovely", "gorgeous", "attractive",
	"smart", "intelligent", "clever", "wise", "insightful", "innovative",
}

// minMatchableLength guards against false positives on tiny fragments;
// anything shorter cannot hold a meaningful whole-word match.
const minMatchableLength = 5

var offensivePatterns = compileWordPatterns(offensiveWords)

func compileWordPatterns(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return patterns
}

// CountOffensiveMatches returns the total number of whole-word,
// case-insensitive occurrences of offensive-list entries in text. A word
// appearing three times contributes three.
func CountOffensiveMatches(text string) int {
	if len(text) < minMatchableLength {
		return 0
	}

	count := 0
	for _, pattern := range offensivePatterns {
		count += len(pattern.FindAllStringIndex(text, -1))
	}
	return count
}

// NegativeSet returns membership lookup for the negative sentiment lexicon.
func NegativeSet() map[string]struct{} { return negativeSet }

// PositiveSet returns membership lookup for the positive sentiment lexicon.
func PositiveSet() map[string]struct{} { return positiveSet }

var (
	negativeSet = toSet(negativeWords)
	positiveSet = toSet(positiveWords)
)

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
