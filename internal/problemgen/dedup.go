package problemgen

import (
	"fmt"
	"strings"
)

// numbered formats the most recent max items as a numbered list. Returns
// "None" if there are no items.
func numbered(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}

	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}

	var b strings.Builder
	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(it))
	}
	return strings.TrimRight(b.String(), "\n")
}
