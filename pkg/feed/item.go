// Package feed builds the RSS 2.0 document published by the pipeline.
package feed

import "time"

// Item is one curated article in the feed.
//
// Summary and Category are set for freshly curated articles and the
// description is rendered from them. Description is set verbatim for
// entries carried over from a previous feed.
type Item struct {
	Title       string
	Link        string
	Summary     string
	Category    string
	Description string
	Published   time.Time
}
