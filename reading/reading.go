// Package reading decides which tokens of a Japanese text run need a
// furigana reading and where the reading stops before trailing okurigana.
package reading

import (
	"strings"

	"furiganaparse/kana"
	"furiganaparse/model"
)

// Tokenizer splits a sentence into morphemes whose surfaces cover it.
type Tokenizer interface {
	Tokenize(text string) []model.Token
}

// Segment is plain text when Reading is empty, otherwise a stem paired with
// its hiragana reading.
type Segment struct {
	Text    string `json:"text"`
	Reading string `json:"reading,omitempty"`
}

// Annotated reports whether the segment carries a reading.
func (s Segment) Annotated() bool {
	return s.Reading != ""
}

// Plain returns a segment without reading.
func Plain(text string) Segment {
	return Segment{Text: text}
}

// Classify returns the hiragana reading to attach to tok and true, or false
// when the surface already spells its own pronunciation.
func Classify(tok model.Token) (string, bool) {
	text := tok.Text
	if text == "" || text == model.NoReading || !tok.HasReading() || text == tok.Reading {
		return "", false
	}
	hira := kana.KatakanaToHiragana(tok.Reading)
	if text == hira {
		return "", false
	}
	return hira, true
}

// SplitOkurigana pairs text with hira, leaving the longest shared kana tail
// unannotated. text and hira must differ.
func SplitOkurigana(text, hira string) []Segment {
	t, h := []rune(text), []rune(hira)
	if len(t) == 0 || len(h) == 0 || t[len(t)-1] != h[len(h)-1] {
		return []Segment{{Text: text, Reading: hira}}
	}
	bound := min(len(t), len(h))
	for i := 1; i < bound; i++ {
		if t[len(t)-i-1] != h[len(h)-i-1] {
			return []Segment{
				{Text: string(t[:len(t)-i]), Reading: string(h[:len(h)-i])},
				Plain(string(h[len(h)-i:])),
			}
		}
	}
	// One string is a suffix of the other: no stem is left to carry the
	// reading on its own, so the whole token is annotated.
	return []Segment{{Text: text, Reading: hira}}
}

// Segments tokenizes run and returns its segments in order. Concatenating
// the Text fields always reproduces run.
func Segments(tok Tokenizer, run string) []Segment {
	if run == "" {
		return nil
	}
	if tok == nil {
		return []Segment{Plain(run)}
	}
	toks := tok.Tokenize(run)

	var (
		out     []Segment
		surface strings.Builder
	)
	for _, t := range toks {
		surface.WriteString(t.Text)
		hira, ok := Classify(t)
		if !ok {
			if t.Text != "" {
				out = append(out, Plain(t.Text))
			}
			continue
		}
		out = append(out, SplitOkurigana(t.Text, hira)...)
	}
	if surface.String() != run {
		return []Segment{Plain(run)}
	}
	return out
}
