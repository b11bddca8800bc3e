// ABOUTME: Service layer implementation for reader view extraction
// ABOUTME: Fetches an article page and extracts its content using go-readability

package reader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/OlhaTymoshenko/rssreader/core/domain"
	feederrors "github.com/OlhaTymoshenko/rssreader/core/errors"
	"github.com/OlhaTymoshenko/rssreader/core/interfaces"

	md "github.com/JohannesKaufmann/html-to-markdown"
	readability "github.com/go-shiori/go-readability"
)

const cacheTTL = time.Hour

var (
	multiNewline  = regexp.MustCompile(`\n{3,}`)
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	headerSpacing = regexp.MustCompile(`\n(#{1,6} )`)
)

// Service extracts reader views. Successful results are cached when a cache is set.
type Service struct {
	client interfaces.HTTPClient
	cache  interfaces.Cache
	logger interfaces.Logger
}

// NewService creates a reader service. cache may be nil.
func NewService(client interfaces.HTTPClient, cache interfaces.Cache, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Service{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// Extract downloads pageURL and returns its readable content
func (s *Service) Extract(ctx context.Context, pageURL string) (domain.ReaderView, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return domain.ReaderView{}, &feederrors.ValidationError{Field: "url", Message: "invalid article URL"}
	}

	cacheKey := "reader:" + pageURL
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached domain.ReaderView
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	resp, err := s.client.Get(ctx, pageURL, nil)
	if err != nil {
		return domain.ReaderView{}, &feederrors.NetworkError{URL: pageURL, Cause: err}
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return domain.ReaderView{}, &feederrors.NetworkError{
			URL:        pageURL,
			StatusCode: resp.StatusCode(),
			Cause:      fmt.Errorf("unexpected status %d", resp.StatusCode()),
		}
	}

	article, err := readability.FromReader(body, parsed)
	if err != nil {
		s.logger.Error("Failed to parse reader view", map[string]interface{}{
			"url":   pageURL,
			"error": err.Error(),
		})
		return domain.ReaderView{}, &feederrors.ParseError{Cause: err}
	}

	view := domain.ReaderView{
		URL:         pageURL,
		Title:       article.Title,
		Byline:      article.Byline,
		SiteName:    article.SiteName,
		Excerpt:     article.Excerpt,
		TextContent: strings.TrimSpace(article.TextContent),
		Image:       article.Image,
	}

	if article.Content != "" {
		converter := md.NewConverter(parsed.Scheme+"://"+parsed.Host, true, nil)
		markdown, err := converter.ConvertString(article.Content)
		if err != nil {
			s.logger.Debug("Failed to convert HTML to markdown", map[string]interface{}{
				"url":   pageURL,
				"error": err.Error(),
			})
		} else {
			view.Markdown = buildMarkdown(view.Title, view.Byline, view.SiteName, markdown)
		}
	}

	if !view.HasContent() {
		return domain.ReaderView{}, &feederrors.ParseError{Cause: errors.New("no readable content")}
	}

	if s.cache != nil {
		if data, err := json.Marshal(view); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, cacheTTL)
		}
	}

	return view, nil
}

// buildMarkdown prefixes content with a title and a metadata line
func buildMarkdown(title, author, siteName, content string) string {
	var markdown strings.Builder

	if title != "" {
		markdown.WriteString("# ")
		markdown.WriteString(title)
		markdown.WriteString("\n\n")
	}

	var metadataItems []string
	if author != "" {
		metadataItems = append(metadataItems, fmt.Sprintf("**Author:** %s", author))
	}
	if siteName != "" {
		metadataItems = append(metadataItems, fmt.Sprintf("**Source:** %s", siteName))
	}
	if len(metadataItems) > 0 {
		markdown.WriteString(strings.Join(metadataItems, " | "))
		markdown.WriteString("\n\n---\n\n")
	}

	markdown.WriteString(cleanMarkdown(content))

	return markdown.String()
}

// cleanMarkdown removes excessive newlines and cleans up markdown formatting
func cleanMarkdown(markdown string) string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = strings.ReplaceAll(markdown, "\r", "\n")

	markdown = multiNewline.ReplaceAllString(markdown, "\n\n")
	markdown = trailingSpace.ReplaceAllString(markdown, "\n")
	markdown = headerSpacing.ReplaceAllString(markdown, "\n\n$1")
	markdown = multiNewline.ReplaceAllString(markdown, "\n\n")

	return strings.TrimSpace(markdown)
}
