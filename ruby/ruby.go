// Package ruby rewrites HTML trees: it inserts furigana as <ruby> markup,
// turns emphasis-dot ruby into emphasis tags and strips ruby again.
package ruby

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"furiganaparse/reading"
)

// Fallback parentheses shown by renderers without ruby support.
const (
	OpenParen  = "("
	CloseParen = ")"
)

// Options controls the generated markup.
type Options struct {
	IncludeFallbackParens bool
}

// Rewriter annotates text nodes using one tokenizer. It is not safe for
// concurrent use because the tokenizer is not.
type Rewriter struct {
	tok  reading.Tokenizer
	opts Options
}

// NewRewriter returns a Rewriter. A nil tokenizer leaves all text plain.
func NewRewriter(tok reading.Tokenizer, opts Options) *Rewriter {
	return &Rewriter{tok: tok, opts: opts}
}

// Annotate rewrites every eligible text node below n and returns the number
// of ruby elements created.
func (r *Rewriter) Annotate(n *html.Node) int {
	created := 0
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				created += r.replaceText(n, c)
			}
		case html.ElementNode:
			if !skipped(c) {
				created += r.Annotate(c)
			}
		}
		c = next
	}
	return created
}

// replaceText splices the rendered pieces of text node c into parent in
// place of c.
func (r *Rewriter) replaceText(parent, c *html.Node) int {
	created := 0
	var pieces []*html.Node
	for _, run := range splitRuns(c.Data) {
		if run.space {
			pieces = append(pieces, textNode(run.text))
			continue
		}
		for _, g := range reading.Build(r.tok, run.text) {
			if !g.Annotated {
				pieces = append(pieces, textNode(g.Text()))
				continue
			}
			pieces = append(pieces, r.rubyNode(g.Segments))
			created++
		}
	}
	if created == 0 {
		return 0
	}
	for _, p := range pieces {
		parent.InsertBefore(p, c)
	}
	parent.RemoveChild(c)
	return created
}

func (r *Rewriter) rubyNode(pairs []reading.Segment) *html.Node {
	ruby := element(atom.Ruby)
	for _, p := range pairs {
		ruby.AppendChild(textNode(p.Text))
		if r.opts.IncludeFallbackParens {
			ruby.AppendChild(wrap(atom.Rp, OpenParen))
		}
		ruby.AppendChild(wrap(atom.Rt, p.Reading))
		if r.opts.IncludeFallbackParens {
			ruby.AppendChild(wrap(atom.Rp, CloseParen))
		}
	}
	return ruby
}

type run struct {
	text  string
	space bool
}

// splitRuns cuts s into alternating whitespace and non-whitespace runs. The
// tokenizer may drop whitespace, so it never sees it.
func splitRuns(s string) []run {
	var (
		runs  []run
		start int
		space bool
	)
	for i, ch := range s {
		sp := unicode.IsSpace(ch)
		if i == 0 {
			space = sp
			continue
		}
		if sp != space {
			runs = append(runs, run{text: s[start:i], space: space})
			start, space = i, sp
		}
	}
	if start < len(s) {
		runs = append(runs, run{text: s[start:], space: space})
	}
	return runs
}

// Annotation markup is never annotated again.
var rubyTags = map[atom.Atom]bool{
	atom.Ruby: true,
	atom.Rt:   true,
	atom.Rp:   true,
	atom.Rb:   true,
	atom.Rtc:  true,
}

// Elements whose content is code, raw text or not prose.
var opaqueTags = map[atom.Atom]bool{
	atom.Script:    true,
	atom.Style:     true,
	atom.Template:  true,
	atom.Noscript:  true,
	atom.Textarea:  true,
	atom.Title:     true,
	atom.Xmp:       true,
	atom.Iframe:    true,
	atom.Noembed:   true,
	atom.Noframes:  true,
	atom.Plaintext: true,
}

func skipped(n *html.Node) bool {
	if n.Namespace != "" {
		// svg and math content
		return true
	}
	a := n.DataAtom
	if a == 0 {
		a = atom.Lookup([]byte(strings.ToLower(n.Data)))
	}
	return rubyTags[a] || opaqueTags[a]
}

func isElement(n *html.Node, a atom.Atom) bool {
	if n.Type != html.ElementNode {
		return false
	}
	return n.DataAtom == a || strings.EqualFold(n.Data, a.String())
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func wrap(a atom.Atom, text string) *html.Node {
	n := element(a)
	n.AppendChild(textNode(text))
	return n
}
