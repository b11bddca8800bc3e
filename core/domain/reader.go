// ABOUTME: Domain models and types for reader view functionality
// ABOUTME: Defines the structure for extracted article content

package domain

// ReaderView represents the readable content of an article page
type ReaderView struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Byline      string `json:"byline,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	Markdown    string `json:"markdown"`    // Markdown content
	TextContent string `json:"textContent"` // Plain text content
	Image       string `json:"image,omitempty"`
}

// HasContent reports whether extraction produced anything to show
func (v ReaderView) HasContent() bool {
	return v.Markdown != "" || v.TextContent != ""
}
