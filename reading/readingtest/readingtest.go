// Package readingtest provides a deterministic tokenizer for tests.
package readingtest

import (
	"unicode/utf8"

	"furiganaparse/model"
)

// Dict maps surfaces to katakana readings. Tokenize matches the longest known
// surface at each position; unknown runes become single tokens without a
// reading, the way kagome reports unknown words.
type Dict map[string]string

// Tokenize implements reading.Tokenizer.
func (d Dict) Tokenize(text string) []model.Token {
	maxLen := 0
	for k := range d {
		if n := utf8.RuneCountInString(k); n > maxLen {
			maxLen = n
		}
	}

	runes := []rune(text)
	var out []model.Token
	for i := 0; i < len(runes); {
		n := min(maxLen, len(runes)-i)
		for ; n > 0; n-- {
			if _, ok := d[string(runes[i:i+n])]; ok {
				break
			}
		}
		reading := ""
		if n == 0 {
			n = 1
			reading = model.NoReading
		}
		surface := string(runes[i : i+n])
		if reading == "" {
			reading = d[surface]
		}
		out = append(out, model.Token{Text: surface, Reading: reading})
		i += n
	}
	return out
}

// Common is a small lexicon shared by package tests.
var Common = Dict{
	"食べる": "タベル",
	"新しい": "アタラシイ",
	"読む":  "ヨム",
	"猫":   "ネコ",
	"です":  "デス",
	"本":   "ホン",
	"を":   "ヲ",
	"が":   "ガ",
	"は":   "ハ",
	"の":   "ノ",
	"日本":  "ニッポン",
	"語":   "ゴ",
	"学校":  "ガッコウ",
	"先生":  "センセイ",
	"行く":  "イク",
	"私":   "ワタシ",
	"。":   "。",
	"、":   "、",
}
