// Package reader extracts readable article text from web pages, either
// through the Jina Reader proxy or by fetching and parsing the page locally.
package reader

import "strings"

// Article is the extracted text of one web page.
type Article struct {
	URL     string
	Title   string
	Content string
}

// TrimToHeading drops reader boilerplate before the first markdown heading.
// When no heading exists the content is returned unchanged.
func TrimToHeading(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			return strings.Join(lines[i:], "\n")
		}
	}
	return content
}
