// Package viewtest queries rendered documents the way a user sees them:
// by data-testid, element id and text.
package viewtest

import (
	"html/template"
	"slices"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// Parse parses a rendered body.
func Parse(t testing.TB, body template.HTML) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}
	return doc
}

// Attr returns the value of n's attribute key, or "".
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether n's class attribute contains class.
func HasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(Attr(n, "class")), class)
}

// Text returns the text content of n with surrounding space trimmed.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// All returns the element nodes under root matching pred, in document
// order.
func All(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return found
}

func first(nodes []*html.Node) *html.Node {
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// AllByTestID returns the elements whose data-testid is id.
func AllByTestID(root *html.Node, id string) []*html.Node {
	return All(root, func(n *html.Node) bool { return Attr(n, "data-testid") == id })
}

// ByTestID returns the first element whose data-testid is id, or nil.
func ByTestID(root *html.Node, id string) *html.Node {
	return first(AllByTestID(root, id))
}

// ByID returns the element whose id is id, or nil.
func ByID(root *html.Node, id string) *html.Node {
	return first(All(root, func(n *html.Node) bool { return Attr(n, "id") == id }))
}

// ByText returns the first element with tag whose text is text, or nil.
func ByText(root *html.Node, tag, text string) *html.Node {
	return first(All(root, func(n *html.Node) bool { return n.Data == tag && Text(n) == text }))
}

// Cells returns the text of every td of every row under tbody.
func Cells(tbody *html.Node) [][]string {
	var rows [][]string
	for _, tr := range All(tbody, func(n *html.Node) bool { return n.Data == "tr" }) {
		var row []string
		for _, td := range All(tr, func(n *html.Node) bool { return n.Data == "td" }) {
			row = append(row, Text(td))
		}
		rows = append(rows, row)
	}
	return rows
}
