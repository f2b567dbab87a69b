package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseHTML never fails: html.Parse is error-tolerant by design and the
// one condition that errors (a broken reader) cannot happen on a byte
// slice. An empty document yields empty scans downstream.
func parseHTML(body []byte) *html.Node {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		doc, _ = html.Parse(strings.NewReader(""))
	}
	return doc
}

// tableRows collects every tr element in document order.
func tableRows(doc *html.Node) []*html.Node {
	var rows []*html.Node
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			rows = append(rows, n)
		}
	})
	return rows
}

// cellText returns the trimmed text of the first td under root carrying
// the given class, or "" when the row has no such cell.
func cellText(root *html.Node, class string) string {
	var out string
	walk(root, func(n *html.Node) {
		if out == "" && isCell(n, class) {
			out = collectText(n)
		}
	})
	return out
}

// cellTexts returns the trimmed text of every matching td in the document.
func cellTexts(doc *html.Node, class string) []string {
	var out []string
	walk(doc, func(n *html.Node) {
		if isCell(n, class) {
			out = append(out, collectText(n))
		}
	})
	return out
}

// countCells counts matching td cells whose text equals want.
func countCells(doc *html.Node, class, want string) int {
	n := 0
	for _, v := range cellTexts(doc, class) {
		if v == want {
			n++
		}
	}
	return n
}

// hasHeading reports whether any h1 in the document equals want.
func hasHeading(doc *html.Node, want string) bool {
	found := false
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.H1 && collectText(n) == want {
			found = true
		}
	})
	return found
}

func isCell(n *html.Node, class string) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Td && hasClass(n, class)
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func collectText(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return strings.TrimSpace(b.String())
}
