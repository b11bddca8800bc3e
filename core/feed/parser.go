// ABOUTME: RSS parser converts the raw feed document into domain articles
// ABOUTME: Wraps gofeed and maps items, thumbnails and dates to the domain model

package feed

import (
	"errors"
	"strings"

	"github.com/OlhaTymoshenko/rssreader/core/domain"
	feederrors "github.com/OlhaTymoshenko/rssreader/core/errors"
	htmlutil "github.com/OlhaTymoshenko/rssreader/pkg/utils/html"
	timeutil "github.com/OlhaTymoshenko/rssreader/pkg/utils/time"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// ThumbnailWidth is the media:thumbnail width preferred for article images
const ThumbnailWidth = "992"

// Parser turns a raw feed document into articles in document order
type Parser interface {
	Parse(body string) ([]domain.Article, error)
}

// RSSParser is the gofeed backed Parser
type RSSParser struct {
	parser *gofeed.Parser
}

// NewRSSParser creates a new parser
func NewRSSParser() *RSSParser {
	return &RSSParser{parser: gofeed.NewParser()}
}

// Parse parses body. Malformed documents yield *errors.ParseError.
func (p *RSSParser) Parse(body string) ([]domain.Article, error) {
	if strings.TrimSpace(body) == "" {
		return nil, &feederrors.ParseError{Cause: errors.New("empty feed content")}
	}

	parsed, err := p.parser.ParseString(body)
	if err != nil {
		return nil, &feederrors.ParseError{Cause: err}
	}

	articles := make([]domain.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		articles = append(articles, convertItem(item))
	}
	return articles, nil
}

// convertItem converts a gofeed item to a domain article
func convertItem(item *gofeed.Item) domain.Article {
	article := domain.Article{
		Title:   strings.TrimSpace(item.Title),
		Link:    strings.TrimSpace(item.Link),
		Summary: htmlutil.ToText(item.Description),
		Image:   findImage(item),
	}

	if item.PublishedParsed != nil {
		article.PublishedAt = *item.PublishedParsed
	} else if item.Published != "" {
		article.PublishedAt = timeutil.ParseFlexibleTime(item.Published)
	}

	return article
}

// findImage picks the article image.
// Priority:
// 1. media:thumbnail with the preferred width
// 2. any other media:thumbnail
// 3. item image
// 4. image enclosures
// 5. first <img> in the description
func findImage(item *gofeed.Item) string {
	thumbs := mediaThumbnails(item.Extensions)
	for _, thumb := range thumbs {
		if thumb.Attrs["width"] == ThumbnailWidth && thumb.Attrs["url"] != "" {
			return thumb.Attrs["url"]
		}
	}
	for _, thumb := range thumbs {
		if thumb.Attrs["url"] != "" {
			return thumb.Attrs["url"]
		}
	}

	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	for _, enc := range item.Enclosures {
		if enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}

	return htmlutil.FirstImage(item.Description)
}

// mediaThumbnails collects media:thumbnail elements, including those nested
// in media:group and media:content.
func mediaThumbnails(extensions ext.Extensions) []ext.Extension {
	media, ok := extensions["media"]
	if !ok {
		return nil
	}

	var thumbs []ext.Extension
	thumbs = append(thumbs, media["thumbnail"]...)
	for _, parent := range []string{"group", "content"} {
		for _, e := range media[parent] {
			thumbs = append(thumbs, nestedThumbnails(e)...)
		}
	}
	return thumbs
}

func nestedThumbnails(e ext.Extension) []ext.Extension {
	var thumbs []ext.Extension
	thumbs = append(thumbs, e.Children["thumbnail"]...)
	for _, content := range e.Children["content"] {
		thumbs = append(thumbs, content.Children["thumbnail"]...)
	}
	return thumbs
}
