package ruby

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultEmphasisTag replaces emphasis-dot ruby.
const DefaultEmphasisTag = "em"

// Marks typesetters put in <rt> to stress a word instead of giving a reading.
var emphasisDots = map[rune]bool{
	'・': true,
	'･': true,
	'·': true,
	'•': true,
	'﹅': true,
	'﹆': true,
}

// DotsToEmphasis replaces every ruby element below n whose reading is a row
// of one repeated emphasis dot with <tag>base text</tag>. It returns the
// number of replacements; a second call on the same tree returns 0.
func DotsToEmphasis(n *html.Node, tag string) int {
	if tag == "" {
		tag = DefaultEmphasisTag
	}
	var rubies []*html.Node
	collect(n, atom.Ruby, &rubies)

	replaced := 0
	for _, ruby := range rubies {
		if ruby.Parent == nil || !isEmphasisRuby(ruby) {
			continue
		}
		em := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
		em.AppendChild(textNode(baseText(ruby)))
		ruby.Parent.InsertBefore(em, ruby)
		ruby.Parent.RemoveChild(ruby)
		replaced++
	}
	return replaced
}

func isEmphasisRuby(ruby *html.Node) bool {
	rt := first(ruby, atom.Rt)
	if rt == nil {
		return false
	}
	dots := strings.TrimSpace(html.UnescapeString(innerText(rt)))
	if dots == "" {
		return false
	}
	mark, _ := utf8.DecodeRuneInString(dots)
	if !emphasisDots[mark] {
		return false
	}
	for _, r := range dots {
		if r != mark {
			return false
		}
	}
	return true
}

// collect appends the elements below n matching a, outermost first, without
// descending into matches.
func collect(n *html.Node, a atom.Atom, out *[]*html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, a) {
			*out = append(*out, c)
			continue
		}
		collect(c, a, out)
	}
}

func first(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, a) {
			return c
		}
		if f := first(c, a); f != nil {
			return f
		}
	}
	return nil
}

func innerText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
