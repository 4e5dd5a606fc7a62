package rssfeeds

import "strings"

const truncatedMarker = "\n[...truncated]"

// cleanText trims every line and drops the blank ones
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if s := strings.TrimSpace(line); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n")
}

// truncate cuts text to maxChars runes and marks the cut
func truncate(text string, maxChars int) string {
	runes := []rune(text)
	if maxChars <= 0 || len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars]) + truncatedMarker
}
