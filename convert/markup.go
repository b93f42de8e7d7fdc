package convert

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/net/html"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// rawTextElements hold text the parser never unescapes.
var rawTextElements = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true, "noscript": true,
	"plaintext": true, "script": true, "style": true, "xmp": true,
}

// prepare rewrites src so that the HTML parser keeps what an XHTML author
// wrote. A self-closed non-void element such as <title/> or <a id="x"/> gets
// an explicit end tag, and every & outside raw text is escaped, so text and
// attribute values leave the parser spelled exactly as in the source.
// Trees parsed from prepared input must be written with render.
func prepare(src []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(src) + len(src)/8)

	z := html.NewTokenizer(bytes.NewReader(src))
	foreign := 0
	raw := false
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		// TagName lowercases the token buffer in place.
		b := append([]byte(nil), z.Raw()...)

		switch tt {
		case html.TextToken:
			if raw {
				out.Write(b)
			} else {
				out.Write(escapeAmp(b))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			// Inside svg and math the parser reads <style> and <title> as
			// ordinary elements.
			if foreign > 0 || tt == html.SelfClosingTagToken {
				z.NextIsNotRawText()
			}
			raw = tt == html.StartTagToken && foreign == 0 && rawTextElements[tag]
			switch {
			case tt == html.StartTagToken:
				if tag == "svg" || tag == "math" {
					foreign++
				}
				out.Write(escapeAmp(b))
			case foreign > 0 || voidElements[tag]:
				out.Write(escapeAmp(b))
			default:
				open := bytes.TrimRight(bytes.TrimSuffix(b, []byte("/>")), " \t\r\n\f")
				out.Write(escapeAmp(open))
				out.WriteString("></" + tag + ">")
			}
			continue
		case html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); foreign > 0 && (tag == "svg" || tag == "math") {
				foreign--
			}
			out.Write(b)
		default:
			out.Write(b)
		}
		raw = false
	}
	return out.Bytes()
}

func escapeAmp(b []byte) []byte {
	return bytes.ReplaceAll(b, []byte("&"), []byte("&amp;"))
}

// render serializes a tree parsed from prepared input. Text and attribute
// values are written as they are held, which is their source spelling.
func render(w *bytes.Buffer, n *html.Node) error {
	switch n.Type {
	case html.ErrorNode:
		return errors.New("cannot render an error node")

	case html.DocumentNode:
		return renderChildren(w, n)

	case html.TextNode, html.RawNode:
		w.WriteString(n.Data)

	case html.CommentNode:
		w.WriteString("<!--")
		w.WriteString(n.Data)
		w.WriteString("-->")

	case html.DoctypeNode:
		w.WriteString("<!DOCTYPE ")
		w.WriteString(n.Data)
		var public, system string
		for _, a := range n.Attr {
			switch a.Key {
			case "public":
				public = a.Val
			case "system":
				system = a.Val
			}
		}
		if public != "" {
			w.WriteString(" PUBLIC ")
			writeQuoted(w, public)
			if system != "" {
				w.WriteByte(' ')
				writeQuoted(w, system)
			}
		} else if system != "" {
			w.WriteString(" SYSTEM ")
			writeQuoted(w, system)
		}
		w.WriteByte('>')

	case html.ElementNode:
		w.WriteByte('<')
		w.WriteString(n.Data)
		for _, a := range n.Attr {
			w.WriteByte(' ')
			if a.Namespace != "" {
				w.WriteString(a.Namespace)
				w.WriteByte(':')
			}
			w.WriteString(a.Key)
			w.WriteByte('=')
			writeQuoted(w, a.Val)
		}
		if n.Namespace == "" && voidElements[n.Data] {
			if n.FirstChild != nil {
				return errors.New("void element <" + n.Data + "> has children")
			}
			w.WriteString("/>")
			return nil
		}
		if n.Namespace != "" && n.FirstChild == nil {
			w.WriteString("/>")
			return nil
		}
		w.WriteByte('>')
		// The parser drops a newline that directly follows these start tags.
		if c := n.FirstChild; c != nil && c.Type == html.TextNode && strings.HasPrefix(c.Data, "\n") {
			switch n.Data {
			case "pre", "listing", "textarea":
				w.WriteByte('\n')
			}
		}
		if err := renderChildren(w, n); err != nil {
			return err
		}
		w.WriteString("</")
		w.WriteString(n.Data)
		w.WriteByte('>')

	default:
		return errors.New("unknown node type")
	}
	return nil
}

func renderChildren(w *bytes.Buffer, n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := render(w, c); err != nil {
			return err
		}
	}
	return nil
}

func writeQuoted(w *bytes.Buffer, s string) {
	q := byte('"')
	if strings.ContainsRune(s, '"') {
		q = '\''
	}
	w.WriteByte(q)
	w.WriteString(s)
	w.WriteByte(q)
}
