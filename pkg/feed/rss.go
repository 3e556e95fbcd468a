package feed

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/api"
)

var strictPolicy = bluemonday.StrictPolicy()

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	GUID        rssGUID `xml:"guid"`
	Description string  `xml:"description"`
	PubDate     string  `xml:"pubDate,omitempty"`
	Category    string  `xml:"category,omitempty"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Render produces the RSS 2.0 document for the channel and items.
func Render(cfg api.FeedConfig, items []Item, now time.Time) ([]byte, error) {
	doc := rssDoc{
		Version: "2.0",
		Channel: rssChannel{
			Title:         cfg.Title,
			Link:          cfg.Link,
			Description:   cfg.Description,
			Language:      cfg.Language,
			LastBuildDate: now.UTC().Format(time.RFC1123Z),
			Items:         make([]rssItem, 0, len(items)),
		},
	}

	for _, it := range items {
		ri := rssItem{
			Title:       it.Title,
			Link:        it.Link,
			GUID:        rssGUID{IsPermaLink: true, Value: it.Link},
			Description: Description(it),
			Category:    it.Category,
		}
		if !it.Published.IsZero() {
			ri.PubDate = it.Published.UTC().Format(time.RFC1123Z)
		}
		doc.Channel.Items = append(doc.Channel.Items, ri)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling RSS document: %w", err)
	}

	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// Description renders an item's feed description. Carried-over entries keep
// their stored description; new entries get the category banner and the
// sanitized summary.
func Description(it Item) string {
	if it.Description != "" {
		return it.Description
	}

	category := it.Category
	if category == "" {
		category = "N/A"
	}
	return fmt.Sprintf("【カテゴリ: %s】<br/><br/>%s", category, strictPolicy.Sanitize(it.Summary))
}
