package scoring

import (
	"regexp"
	"strings"

	"topicbot/config"
)

var (
	bracketPrefixRe = regexp.MustCompile(`^\[.*?\][\s\p{Zs}]*`)
	showHNRe        = regexp.MustCompile(`(?i)^Show HN:[\s\p{Zs}]*`)
	askHNRe         = regexp.MustCompile(`(?i)^Ask HN:[\s\p{Zs}]*`)
)

// ExtractKeyword turns a feed item title into a concise topic keyword
func ExtractKeyword(title string) string {
	kw := strings.TrimSpace(title)
	kw = bracketPrefixRe.ReplaceAllString(kw, "")
	kw = showHNRe.ReplaceAllString(kw, "")
	kw = askHNRe.ReplaceAllString(kw, "")

	runes := []rune(kw)
	if len(runes) > config.MaxKeywordLength {
		kw = string(runes[:config.MaxKeywordLength-3]) + "..."
	}
	return kw
}
