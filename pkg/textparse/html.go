package textparse

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags force a line break around their content when flattening
// markup to plain text.
var blockTags = map[string]struct{}{
	"p": {}, "div": {}, "br": {}, "li": {}, "ul": {}, "ol": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"blockquote": {}, "pre": {}, "tr": {}, "table": {}, "section": {}, "article": {},
}

// skipTags are dropped entirely, content included.
var skipTags = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "head": {}, "iframe": {},
}

// HTMLToPlainText flattens an HTML fragment captured by the client into
// plain text. Inline markup collapses into the surrounding text, block
// elements become newlines, script and style bodies are discarded.
func HTMLToPlainText(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))

	var b strings.Builder
	skipDepth := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return collapseWhitespace(b.String())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if _, ok := skipTags[tag]; ok && tt == html.StartTagToken {
				skipDepth++
				continue
			}
			if _, ok := blockTags[tag]; ok {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if _, ok := skipTags[tag]; ok && skipDepth > 0 {
				skipDepth--
				continue
			}
			if _, ok := blockTags[tag]; ok {
				b.WriteByte('\n')
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			b.Write(tokenizer.Text())
		}
	}
}

// collapseWhitespace trims each line and drops runs of blank lines left
// behind by nested block elements.
func collapseWhitespace(raw string) string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}
