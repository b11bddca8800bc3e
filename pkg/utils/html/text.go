// ABOUTME: HTML utilities for turning feed markup into plain text
// ABOUTME: Uses goquery so entities and nested tags are handled by a real parser

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ToText extracts the visible text of an HTML fragment and collapses whitespace.
// Input that is not HTML is returned with whitespace collapsed.
func ToText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return CollapseSpace(fragment)
	}
	doc.Find("script, style").Remove()

	return CollapseSpace(doc.Text())
}

// FirstImage returns the src of the first <img> in the fragment, if any
func FirstImage(fragment string) string {
	if !strings.Contains(fragment, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return strings.TrimSpace(src)
}

// CollapseSpace replaces runs of whitespace with a single space
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
