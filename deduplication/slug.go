package deduplication

import (
	"regexp"
	"strings"
)

var (
	// letters and digits of any script survive, as do underscore, whitespace and hyphen
	nonSlugCharsRe = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Zs}-]`)
	separatorRe    = regexp.MustCompile(`[\s\p{Zs}_]+`)
)

// Slugify normalizes a keyword into the slug form used by published content
func Slugify(keyword string) string {
	s := strings.ToLower(keyword)
	s = nonSlugCharsRe.ReplaceAllString(s, "")
	s = separatorRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
