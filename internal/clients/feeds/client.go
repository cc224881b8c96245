package feeds

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

// Item is one entry pulled from a feed, reduced to the fields the
// ingestion gate cares about
type Item struct {
	Title     string
	Link      string
	Summary   string
	Published *time.Time
}

// Client fetches and parses RSS/Atom feeds
type Client struct {
	parser *gofeed.Parser
	log    zerolog.Logger
}

// NewClient creates a new feed client
func NewClient(log zerolog.Logger) *Client {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{
		Timeout: 10 * time.Second,
	}

	return &Client{
		parser: parser,
		log:    log.With().Str("client", "feeds").Logger(),
	}
}

// Fetch retrieves a feed and returns its entries. Items with missing
// fields are returned as-is; filtering is the ingestion gate's job.
func (c *Client) Fetch(feedURL string) ([]Item, error) {
	feed, err := c.parser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		summary := entry.Description
		if summary == "" {
			summary = entry.Content
		}

		var published *time.Time
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			published = entry.UpdatedParsed
		}

		items = append(items, Item{
			Title:     strings.TrimSpace(entry.Title),
			Link:      strings.TrimSpace(entry.Link),
			Summary:   strings.TrimSpace(summary),
			Published: published,
		})
	}

	c.log.Debug().
		Str("url", feedURL).
		Int("items", len(items)).
		Msg("Feed fetched")

	return items, nil
}
