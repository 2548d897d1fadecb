// Package htmlutil provides traversal helpers over parsed HTML node trees.
//
// The atlas markup carries no stable identifiers, so field extraction
// relies on "nearest following element in document order" rules that
// cross subtree boundaries. CSS selectors cannot express those, which is
// why these helpers operate on raw x/net/html nodes.
package htmlutil

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// GetText returns the concatenated text content of a node and its descendants.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// CleanText collapses runs of whitespace in s and trims the ends.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanNodeText returns the cleaned text content of node, or "" for nil.
func CleanNodeText(node *html.Node) string {
	if node == nil {
		return ""
	}
	return CleanText(GetText(node))
}

// Next returns the node following n in document order: its first child if
// it has one, otherwise the next sibling of n or of the closest ancestor
// that has one. Returns nil once the tree is exhausted.
func Next(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

// NextElement returns the first element named tag that follows n in
// document order, or nil if none exists. The search includes n's own
// descendants, matching how "the nearest following element" reads on a
// rendered page.
func NextElement(n *html.Node, tag string) *html.Node {
	for cur := Next(n); cur != nil; cur = Next(cur) {
		if cur.Type == html.ElementNode && cur.Data == tag {
			return cur
		}
	}
	return nil
}

// NextElementWithAttr returns the first element named tag following n in
// document order that carries the given attribute value, or nil.
func NextElementWithAttr(n *html.Node, tag, key, value string) *html.Node {
	for cur := Next(n); cur != nil; cur = Next(cur) {
		if cur.Type == html.ElementNode && cur.Data == tag && AttrVal(cur, key) == value {
			return cur
		}
	}
	return nil
}

// FindDescendant returns the first descendant of n named tag, or nil.
func FindDescendant(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == tag {
			return child
		}
		if found := FindDescendant(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// AttrVal returns the value of the named attribute on n, or "".
func AttrVal(n *html.Node, key string) string {
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
