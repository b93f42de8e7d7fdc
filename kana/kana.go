// Package kana converts between the katakana and hiragana syllabaries and
// classifies runes by Japanese script.
package kana

import "unicode/utf8"

// katakanaChart and hiraganaChart are position-aligned: the n-th rune of one
// corresponds to the n-th rune of the other.
const (
	katakanaChart = "ァアィイゥウェエォオカガキギクグケゲコゴサザシジスズセゼソゾタダチヂッツヅテデトドナニヌネノハバパヒビピフブプヘベペホボポマミムメモャヤュユョヨラリルレロヮワヰヱヲンヴヵヶヽヾ"
	hiraganaChart = "ぁあぃいぅうぇえぉおかがきぎくぐけげこごさざしじすずせぜそぞただちぢっつづてでとどなにぬねのはばぱひびぴふぶぷへべぺほぼぽまみむめもゃやゅゆょよらりるれろゎわゐゑをんゔゕゖゝゞ"
)

var (
	k2h = make(map[rune]rune, utf8.RuneCountInString(katakanaChart))
	h2k = make(map[rune]rune, utf8.RuneCountInString(hiraganaChart))
)

func init() {
	hira := []rune(hiraganaChart)
	for i, k := range []rune(katakanaChart) {
		k2h[k] = hira[i]
		h2k[hira[i]] = k
	}
}

// KatakanaToHiragana converts katakana to hiragana. Runes outside the chart,
// including the long vowel mark, are returned unchanged.
func KatakanaToHiragana(s string) string {
	return translate(s, k2h)
}

// HiraganaToKatakana is the inverse of KatakanaToHiragana.
func HiraganaToKatakana(s string) string {
	return translate(s, h2k)
}

func translate(s string, table map[rune]rune) string {
	runes := []rune(s)
	for i, r := range runes {
		if m, ok := table[r]; ok {
			runes[i] = m
		}
	}
	return string(runes)
}

// IsHiragana reports whether r is in the hiragana block.
func IsHiragana(r rune) bool {
	return r >= 0x3040 && r <= 0x309F
}

// IsKatakana reports whether r is in the katakana block.
func IsKatakana(r rune) bool {
	return r >= 0x30A0 && r <= 0x30FF
}

// IsKana returns true if rune is Hiragana or Katakana
func IsKana(r rune) bool {
	return IsHiragana(r) || IsKatakana(r)
}

// IsKanji reports whether r is a CJK unified ideograph or the 々 iteration mark.
func IsKanji(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DBF) || r == '々'
}

// ContainsKanji reports whether any rune of s is a kanji.
func ContainsKanji(s string) bool {
	for _, r := range s {
		if IsKanji(r) {
			return true
		}
	}
	return false
}
