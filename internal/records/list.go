package records

import "strings"

// SplitList decodes a comma separated list, dropping blank items.
func SplitList(s string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func JoinList(items []string) string {
	return strings.Join(items, ",")
}
