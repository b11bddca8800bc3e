// ABOUTME: Article domain model represents a single news entry parsed from the feed
// ABOUTME: Provides validation to ensure an article has the fields the display needs

package domain

import "time"

// Article represents one news entry of the feed.
// Articles are produced by the parser and treated as immutable values afterwards.
type Article struct {
	// Title is the article's headline
	Title string

	// Link is the URL to the full article
	Link string

	// PublishedAt is when the article was published; zero if the feed omitted it
	PublishedAt time.Time

	// Summary is the plain text description of the article
	Summary string

	// Image is the thumbnail URL, empty if the feed has none
	Image string
}

// IsValid checks if the article has all required fields
func (a Article) IsValid() bool {
	if a.Title == "" {
		return false
	}

	if a.Link == "" {
		return false
	}

	return true
}

// HasImage reports whether the article carries a thumbnail
func (a Article) HasImage() bool {
	return a.Image != ""
}
