package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLToPlainText(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text passes through",
			input:    "just some text",
			expected: "just some text",
		},
		{
			name:     "inline markup collapses",
			input:    `a <b>bold</b> and <em>emphasized</em> claim`,
			expected: "a bold and emphasized claim",
		},
		{
			name:     "block elements become line breaks",
			input:    "<p>first paragraph</p><p>second paragraph</p>",
			expected: "first paragraph\nsecond paragraph",
		},
		{
			name:     "list items split lines",
			input:    "<ul><li>one</li><li>two</li></ul>",
			expected: "one\ntwo",
		},
		{
			name:     "script bodies are dropped",
			input:    `<p>visible</p><script>alert("nope")</script>`,
			expected: "visible",
		},
		{
			name:     "whitespace runs collapse",
			input:    "<div>  spaced \n\t out  </div>",
			expected: "spaced out",
		},
		{
			name:     "anchors keep their text",
			input:    `see <a href="https://example.com">the source</a> here`,
			expected: "see the source here",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, HTMLToPlainText(tc.input))
		})
	}
}
