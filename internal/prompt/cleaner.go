package prompt

import (
	"regexp"
	"strings"
)

// Formatting artifacts the models emit despite plain-text instructions.
var (
	markdownSymbolsPattern = regexp.MustCompile("[#*_`]+")
	horizontalRulePattern  = regexp.MustCompile(`-{3,}`)
	tripleNewlinePattern   = regexp.MustCompile(`\n{3,}`)
	repeatedSpacePattern   = regexp.MustCompile(` {2,}`)
)

// CleanModelOutput strips markdown symbols and collapses stray whitespace
// from free-form model text.
func CleanModelOutput(text string) string {
	text = markdownSymbolsPattern.ReplaceAllString(text, "")
	text = horizontalRulePattern.ReplaceAllString(text, "")
	text = tripleNewlinePattern.ReplaceAllString(text, "\n\n")
	text = repeatedSpacePattern.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, `\n`, "\n")
	return strings.TrimSpace(text)
}
