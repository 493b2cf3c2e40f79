package utils

import "strings"

// CountWords counts whitespace-separated words the same way the draft
// editor reports them to the user.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
