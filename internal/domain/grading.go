package domain

import "strings"

// IsCorrect reports whether answer matches definition, ignoring case.
// No trimming is done: surrounding whitespace counts.
func IsCorrect(answer, definition string) bool {
	return strings.ToLower(answer) == strings.ToLower(definition)
}

// Percentage returns correct/total*100, or 0 when total is 0.
func Percentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}
