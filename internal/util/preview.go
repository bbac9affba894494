package util

import "strings"

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// PreviewList truncates at most n items for a compact log field.
func PreviewList(items []string, n, limit int) []string {
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for _, item := range items[:n] {
		out = append(out, TruncateForLog(item, limit))
	}
	return out
}
