package reading

import (
	"testing"

	"github.com/stretchr/testify/require"

	"furiganaparse/reading/readingtest"
)

func TestGroupSegments(t *testing.T) {
	segs := []Segment{
		{Text: "日本", Reading: "にっぽん"},
		{Text: "語", Reading: "ご"},
		Plain("の"),
		Plain(""),
		Plain("、"),
		{Text: "先生", Reading: "せんせい"},
	}
	got := GroupSegments(segs)
	require.Equal(t, []Group{
		{Annotated: true, Segments: []Segment{{Text: "日本", Reading: "にっぽん"}, {Text: "語", Reading: "ご"}}},
		{Annotated: false, Segments: []Segment{Plain("の、")}},
		{Annotated: true, Segments: []Segment{{Text: "先生", Reading: "せんせい"}}},
	}, got)
	require.Equal(t, "日本語", got[0].Text())
}

func TestBuild(t *testing.T) {
	groups := Build(readingtest.Common, "日本語の学校です")
	require.Len(t, groups, 4)
	require.True(t, groups[0].Annotated)
	require.Len(t, groups[0].Segments, 2)
	require.Equal(t, "の", groups[1].Text())
	require.True(t, groups[2].Annotated)
	require.Equal(t, "学校", groups[2].Text())
	require.Equal(t, "です", groups[3].Text())

	var text string
	for _, g := range groups {
		text += g.Text()
	}
	require.Equal(t, "日本語の学校です", text)
}
