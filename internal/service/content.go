package service

import (
	"fmt"
	"strings"
)

const (
	excerptLength  = 150
	wordsPerMinute = 200
)

// makeExcerpt returns the first 150 characters of content with a trailing
// ellipsis when it was truncated. Counts runes so multibyte text is not
// cut mid-character.
func makeExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength]) + "..."
}

// estimateReadTime derives a reading-time label from the word count at 200
// words per minute, never below one minute.
func estimateReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := words / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
