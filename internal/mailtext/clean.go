// Package mailtext turns inbound HTML email bodies into plain text suitable
// for prompt construction.
package mailtext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	breakPattern      = regexp.MustCompile(`(\\n|/n|\n|\r)`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Clean strips markup from an HTML (or plain-text) email body, unescapes
// entities and collapses all whitespace runs to single spaces. Plain text
// passes through unchanged apart from whitespace normalization, so callers
// do not need to know which form the gateway delivered.
func Clean(body string) string {
	text := body
	if doc, err := html.Parse(strings.NewReader(body)); err == nil {
		text = visibleText(doc)
	}

	text = breakPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// visibleText extracts text nodes, skipping content that never renders.
// The html parser also resolves entities, which covers the unescape step.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
