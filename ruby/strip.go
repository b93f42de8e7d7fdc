package ruby

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Strip replaces every ruby element below n with a text node holding its base
// text and merges the adjacent text nodes this leaves behind. It returns the
// number of ruby elements removed.
func Strip(n *html.Node) int {
	var rubies []*html.Node
	collect(n, atom.Ruby, &rubies)

	touched := make(map[*html.Node]bool)
	for _, ruby := range rubies {
		parent := ruby.Parent
		parent.InsertBefore(textNode(baseText(ruby)), ruby)
		parent.RemoveChild(ruby)
		touched[parent] = true
	}
	for parent := range touched {
		mergeText(parent)
	}
	return len(rubies)
}

// baseText returns the text of ruby's descendants outside rt, rp and rtc.
func baseText(ruby *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				if isElement(c, atom.Rt) || isElement(c, atom.Rp) || isElement(c, atom.Rtc) {
					continue
				}
				walk(c)
			}
		}
	}
	walk(ruby)
	return b.String()
}

// mergeText joins runs of adjacent text children of n.
func mergeText(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			continue
		}
		for next := c.NextSibling; next != nil && next.Type == html.TextNode; next = c.NextSibling {
			c.Data += next.Data
			n.RemoveChild(next)
		}
	}
}
