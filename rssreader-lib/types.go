// ABOUTME: Public types for the rssreader library API
// ABOUTME: Provides user-friendly types that wrap internal domain models

package rssreader

import (
	"time"

	"github.com/OlhaTymoshenko/rssreader/core/domain"
)

// Article represents one news entry
type Article struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Image     string    `json:"image,omitempty"`
}

// ReaderView is the readable content of an article page
type ReaderView struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Byline   string `json:"byline,omitempty"`
	SiteName string `json:"site_name,omitempty"`
	Markdown string `json:"markdown"`
	Text     string `json:"text"`
	Image    string `json:"image,omitempty"`
}

// CacheStatus describes the cached feed body
type CacheStatus struct {
	Cached    bool          `json:"cached"`
	Fresh     bool          `json:"fresh"`
	FetchedAt time.Time     `json:"fetched_at,omitempty"`
	Age       time.Duration `json:"age"`
	Size      int           `json:"size"`
	Window    time.Duration `json:"window"`
}

func articlesToPublic(articles []domain.Article) []Article {
	out := make([]Article, len(articles))
	for i, a := range articles {
		out[i] = Article{
			Title:     a.Title,
			Link:      a.Link,
			Published: a.PublishedAt,
			Summary:   a.Summary,
			Image:     a.Image,
		}
	}
	return out
}

func readerViewToPublic(v domain.ReaderView) *ReaderView {
	return &ReaderView{
		URL:      v.URL,
		Title:    v.Title,
		Byline:   v.Byline,
		SiteName: v.SiteName,
		Markdown: v.Markdown,
		Text:     v.TextContent,
		Image:    v.Image,
	}
}
