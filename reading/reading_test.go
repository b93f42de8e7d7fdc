package reading

import (
	"testing"

	"github.com/stretchr/testify/require"

	"furiganaparse/model"
	"furiganaparse/reading/readingtest"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		tok      model.Token
		wantHira string
		wantOK   bool
	}{
		{"kana_matches_reading", model.Token{Text: "です", Reading: "デス"}, "", false},
		{"katakana_word", model.Token{Text: "コーヒー", Reading: "コーヒー"}, "", false},
		{"missing_reading", model.Token{Text: "ABC"}, "", false},
		{"sentinel_reading", model.Token{Text: "123", Reading: "*"}, "", false},
		{"sentinel_surface", model.Token{Text: "*", Reading: "ホシ"}, "", false},
		{"empty_surface", model.Token{Text: "", Reading: "ア"}, "", false},
		{"kanji", model.Token{Text: "猫", Reading: "ネコ"}, "ねこ", true},
		{"one_rune_differs", model.Token{Text: "食べる", Reading: "タベル"}, "たべる", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hira, ok := Classify(tt.tok)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantHira, hira)
		})
	}
}

func TestSplitOkurigana(t *testing.T) {
	tests := []struct {
		text, hira string
		want       []Segment
	}{
		{"食べる", "たべる", []Segment{{Text: "食", Reading: "た"}, Plain("べる")}},
		{"新しい", "あたらしい", []Segment{{Text: "新", Reading: "あたら"}, Plain("しい")}},
		{"読む", "よむ", []Segment{{Text: "読", Reading: "よ"}, Plain("む")}},
		{"猫", "ねこ", []Segment{{Text: "猫", Reading: "ねこ"}}},
		{"取り扱い", "とりあつかい", []Segment{{Text: "取り扱", Reading: "とりあつか"}, Plain("い")}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			require.Equal(t, tt.want, SplitOkurigana(tt.text, tt.hira))
		})
	}
}

// A surface that is a pure suffix of its reading leaves no stem; the whole
// pair must still be annotated rather than dropped.
func TestSplitOkuriganaExhausted(t *testing.T) {
	got := SplitOkurigana("すごい", "ものすごい")
	require.Equal(t, []Segment{{Text: "すごい", Reading: "ものすごい"}}, got)

	got = SplitOkurigana("お茶い", "い")
	require.Equal(t, []Segment{{Text: "お茶い", Reading: "い"}}, got)
}

func TestSegmentsPreserveText(t *testing.T) {
	for _, run := range []string{
		"私は新しい本を読む。",
		"猫が食べる",
		"ABC日本語123",
		"未知の漢字",
	} {
		t.Run(run, func(t *testing.T) {
			segs := Segments(readingtest.Common, run)
			var text string
			for _, s := range segs {
				text += s.Text
			}
			require.Equal(t, run, text)
		})
	}
}

func TestSegments(t *testing.T) {
	got := Segments(readingtest.Common, "新しい本を読む")
	require.Equal(t, []Segment{
		{Text: "新", Reading: "あたら"},
		Plain("しい"),
		{Text: "本", Reading: "ほん"},
		Plain("を"),
		{Text: "読", Reading: "よ"},
		Plain("む"),
	}, got)
}

type lossyTokenizer struct{}

func (lossyTokenizer) Tokenize(string) []model.Token {
	return []model.Token{{Text: "猫", Reading: "ネコ"}}
}

func TestSegmentsFallBackToPlain(t *testing.T) {
	require.Equal(t, []Segment{Plain("猫 猫")}, Segments(lossyTokenizer{}, "猫 猫"))
	require.Equal(t, []Segment{Plain("猫")}, Segments(nil, "猫"))
	require.Nil(t, Segments(readingtest.Common, ""))
}
