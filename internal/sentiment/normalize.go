package sentiment

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// RemoveLinks strips markdown links (keeping the link text) and bare URLs.
// URLs would otherwise pollute word counts and the VADER signal.
func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return bareURLPattern.ReplaceAllString(input, "")
}

// NormalizeText renders any markdown in the input to plain text, collapses
// whitespace, and strips links. Page text scraped from comment-heavy sites
// frequently carries markdown formatting.
func NormalizeText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := strings.Join(strings.Fields(string(output)), " ")

	return RemoveLinks(plainText)
}
