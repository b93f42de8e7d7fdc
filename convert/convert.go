// Package convert applies the ruby rewriter to whole HTML or XHTML documents.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"furiganaparse/reading"
	"furiganaparse/ruby"
)

// Mode selects the direction of the conversion.
type Mode string

const (
	ModeAnnotate Mode = "annotate"
	ModeStrip    Mode = "strip"
)

// ErrNoBody is returned for documents without a <body> element.
var ErrNoBody = errors.New("document has no body")

// Options configures a conversion.
type Options struct {
	IncludeFallbackParens bool
	DotToEmphasis         bool
	EmphasisTag           string
	Mode                  Mode
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		IncludeFallbackParens: true,
		EmphasisTag:           ruby.DefaultEmphasisTag,
		Mode:                  ModeAnnotate,
	}
}

// Validate reports unusable option values.
func (o Options) Validate() error {
	switch o.Mode {
	case ModeAnnotate, ModeStrip:
		return nil
	default:
		return fmt.Errorf("unknown mode %q", string(o.Mode))
	}
}

// AnnotateDocument adds furigana below body in place and returns it.
func AnnotateDocument(body *html.Node, tok reading.Tokenizer, opts Options) *html.Node {
	if opts.DotToEmphasis {
		ruby.DotsToEmphasis(body, opts.EmphasisTag)
	}
	ruby.NewRewriter(tok, ruby.Options{IncludeFallbackParens: opts.IncludeFallbackParens}).Annotate(body)
	return body
}

// StripAnnotation removes all ruby markup below body in place and returns it.
func StripAnnotation(body *html.Node) *html.Node {
	ruby.Strip(body)
	return body
}

// Converter turns serialized documents into serialized documents. A Converter
// owns its tokenizer and must not be shared between goroutines.
type Converter struct {
	tok  reading.Tokenizer
	opts Options
	log  zerolog.Logger
}

// NewConverter returns a Converter. tok may be nil in strip mode.
func NewConverter(tok reading.Tokenizer, opts Options) *Converter {
	return &Converter{
		tok:  tok,
		opts: opts,
		log:  log.With().Str("component", "convert").Logger(),
	}
}

var (
	byteOrderMark = []byte("\ufeff")
	xmlDecl       = regexp.MustCompile(`^\s*<\?xml[^>]*\?>\s*`)
)

// Convert parses src, rewrites its body according to the mode and renders the
// whole document again.
func (c *Converter) Convert(src []byte) ([]byte, error) {
	if err := c.opts.Validate(); err != nil {
		return nil, err
	}

	// The HTML parser turns an XML declaration into a comment and moves a
	// byte order mark into the body, so both are carried over by hand.
	rest := bytes.TrimPrefix(src, byteOrderMark)
	bom := src[:len(src)-len(rest)]
	prolog := xmlDecl.Find(rest)
	rest = rest[len(prolog):]
	crlf := bytes.Contains(src, []byte("\r\n"))

	doc, err := html.Parse(bytes.NewReader(prepare(rest)))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	body := FindBody(doc)
	if body == nil {
		return nil, ErrNoBody
	}

	switch c.opts.Mode {
	case ModeStrip:
		StripAnnotation(body)
	default:
		AnnotateDocument(body, c.tok, c.opts)
	}

	var buf bytes.Buffer
	buf.Write(bom)
	buf.Write(bytes.ReplaceAll(prolog, []byte("\r\n"), []byte("\n")))
	if err := render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	out := buf.Bytes()
	if crlf {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	c.log.Debug().Int("in_bytes", len(src)).Int("out_bytes", len(out)).Str("mode", string(c.opts.Mode)).Msg("converted")
	return out, nil
}

// FindBody returns the first <body> element below n.
func FindBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := FindBody(c); b != nil {
			return b
		}
	}
	return nil
}
