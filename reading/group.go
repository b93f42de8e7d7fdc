package reading

import "strings"

// Group is a maximal stretch of segments of one kind. A plain group holds a
// single segment with the merged text; an annotated group holds every pair
// that is rendered inside one ruby element.
type Group struct {
	Annotated bool      `json:"annotated"`
	Segments  []Segment `json:"segments"`
}

// Text returns the readable text of g, without readings.
func (g Group) Text() string {
	var b strings.Builder
	for _, s := range g.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// GroupSegments coalesces adjacent segments of the same kind in one forward
// pass.
func GroupSegments(segs []Segment) []Group {
	var groups []Group
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		n := len(groups)
		if n > 0 && groups[n-1].Annotated == s.Annotated() {
			last := &groups[n-1]
			if last.Annotated {
				last.Segments = append(last.Segments, s)
			} else {
				last.Segments[0].Text += s.Text
			}
			continue
		}
		groups = append(groups, Group{Annotated: s.Annotated(), Segments: []Segment{s}})
	}
	return groups
}

// Build returns the grouped segments of a non-whitespace run.
func Build(tok Tokenizer, run string) []Group {
	return GroupSegments(Segments(tok, run))
}
