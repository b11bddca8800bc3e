package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain text", "Breaking   news\n today", "Breaking news today"},
		{"tags removed", "<p>Storm <b>hits</b> coast</p>", "Storm hits coast"},
		{"entities decoded", "Q&amp;A &ndash; rates", "Q&A – rates"},
		{"script dropped", "<p>Story</p><script>track()</script>", "Story"},
		{"image only", `<img src="https://example.com/a.jpg"/>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToText(tt.input))
		})
	}
}

func TestFirstImage(t *testing.T) {
	assert.Equal(t, "https://example.com/a.jpg",
		FirstImage(`<p>x</p><img src=" https://example.com/a.jpg "><img src="b.jpg">`))
	assert.Empty(t, FirstImage("<p>no image</p>"))
	assert.Empty(t, FirstImage(""))
}
