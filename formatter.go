package medcrawl

import (
	"fmt"
	"strings"
)

// FormatRecords formats records for terminal display.
// Bodies are shortened to maxBody characters; zero keeps them whole.
// Records are separated by blank lines.
func FormatRecords(records []*Record, maxBody int) string {
	if len(records) == 0 {
		return ""
	}

	parts := make([]string, 0, len(records))
	for _, r := range records {
		header := r.Title
		if header == "" {
			header = r.SourceURL
		}
		body := r.Body
		if maxBody > 0 {
			if runes := []rune(body); len(runes) > maxBody {
				body = string(runes[:maxBody]) + "..."
			}
		}
		parts = append(parts, fmt.Sprintf("## [%s] %s\n%s\n%s", strings.ToUpper(r.Key), header, r.SourceURL, body))
	}

	return strings.Join(parts, "\n\n")
}

// FormatLinks formats an index page's links as a numbered list so the user
// can pick the next URL to fetch.
func FormatLinks(links []Link) string {
	if len(links) == 0 {
		return ""
	}

	var b strings.Builder
	for i, l := range links {
		fmt.Fprintf(&b, "%3d. %s\n     %s\n", i+1, l.Label, l.URL)
	}
	return b.String()
}
