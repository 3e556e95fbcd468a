package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// MergePrevious appends entries from a previously published feed document
// that are not superseded by the new items, newest first, capped at
// maxItems. A maxItems of zero or less means no cap.
func MergePrevious(previous []byte, items []Item, maxItems int) ([]Item, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(previous))
	if err != nil {
		return nil, fmt.Errorf("parsing previous feed: %w", err)
	}

	seen := make(map[string]bool, len(items))
	for _, it := range items {
		seen[it.Link] = true
	}

	merged := items
	for _, old := range parsed.Items {
		if old.Link == "" || seen[old.Link] {
			continue
		}
		seen[old.Link] = true

		it := Item{
			Title:       old.Title,
			Link:        old.Link,
			Description: old.Description,
		}
		if len(old.Categories) > 0 {
			it.Category = old.Categories[0]
		}
		if old.PublishedParsed != nil {
			it.Published = *old.PublishedParsed
		}
		merged = append(merged, it)
	}

	if maxItems > 0 && len(merged) > maxItems {
		merged = merged[:maxItems]
	}
	return merged, nil
}
