package crawler

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractTitles parses an HTML document and returns the whitespace-trimmed
// text content of each h1 element in document order.
func ExtractTitles(body string) []string {
	titles := []string{}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return titles
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "h1" {
			var sb strings.Builder
			collectText(n, &sb)
			titles = append(titles, strings.TrimSpace(sb.String()))
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return titles
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}
