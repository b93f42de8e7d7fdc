package kana

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestChartsAligned(t *testing.T) {
	require.Equal(t, utf8.RuneCountInString(katakanaChart), utf8.RuneCountInString(hiraganaChart))
	require.Len(t, k2h, utf8.RuneCountInString(katakanaChart))
	require.Len(t, h2k, utf8.RuneCountInString(hiraganaChart))
}

func TestKatakanaToHiragana(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"タベル", "たべる"},
		{"アタラシイ", "あたらしい"},
		{"ガッコウ", "がっこう"},
		{"ヴァイオリン", "ゔぁいおりん"},
		{"ヵヶ", "ゕゖ"},
		{"コーヒー", "こーひー"},
		{"漢字とABC", "漢字とABC"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, KatakanaToHiragana(tt.in))
		})
	}
}

func TestHiraganaRoundTrip(t *testing.T) {
	require.Equal(t, hiraganaChart, KatakanaToHiragana(HiraganaToKatakana(hiraganaChart)))
	require.Equal(t, katakanaChart, HiraganaToKatakana(KatakanaToHiragana(katakanaChart)))

	for _, s := range []string{"たべる", "きょうは、いいてんきです", "ゝゞ"} {
		require.Equal(t, s, KatakanaToHiragana(HiraganaToKatakana(s)))
	}
}

func TestScriptPredicates(t *testing.T) {
	require.True(t, IsHiragana('あ'))
	require.False(t, IsHiragana('ア'))
	require.True(t, IsKatakana('ア'))
	require.True(t, IsKana('ー'))
	require.True(t, IsKanji('食'))
	require.True(t, IsKanji('々'))
	require.False(t, IsKanji('a'))
	require.True(t, ContainsKanji("食べる"))
	require.False(t, ContainsKanji("たべる"))
}
