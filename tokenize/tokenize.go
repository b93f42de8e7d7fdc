package tokenize

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
	"github.com/rs/zerolog/log"

	"furiganaparse/kana"
	"furiganaparse/model"
)

const longVowel = 'ー'

// Token represents a token / morpheme produced by the tokenizer.
type Token = model.Token

// Dictionary names a kagome system dictionary.
type Dictionary string

const (
	IPA    Dictionary = "ipa"
	UniDic Dictionary = "uni"
)

// Validate reports whether d names a supported dictionary. The empty name
// selects IPA.
func (d Dictionary) Validate() error {
	switch d {
	case IPA, UniDic, "":
		return nil
	default:
		return fmt.Errorf("unknown dictionary %q", string(d))
	}
}

// Dict returns the system dictionary for d. The kagome-dict packages load
// their data once and share it between tokenizers.
func (d Dictionary) Dict() (*dict.Dict, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d == UniDic {
		return uni.Dict(), nil
	}
	return ipa.Dict(), nil
}

// Tokenizer wraps one kagome tokenizer instance. Instances are not shared
// between goroutines; build one per worker.
type Tokenizer struct {
	kg   *tokenizer.Tokenizer
	dict Dictionary
}

// New builds a tokenizer over the given dictionary, omitting BOS/EOS tokens.
func New(d Dictionary) (*Tokenizer, error) {
	sys, err := d.Dict()
	if err != nil {
		return nil, err
	}
	kg, err := tokenizer.New(sys, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("init kagome tokenizer: %w", err)
	}
	log.Debug().Str("component", "tokenize").Str("dictionary", string(d)).Msg("tokenizer ready")
	return &Tokenizer{kg: kg, dict: d}, nil
}

// Dictionary reports which dictionary backs t.
func (t *Tokenizer) Dictionary() Dictionary {
	return t.dict
}

// Tokenize uses kagome to produce tokens for the input text (normal mode).
func (t *Tokenizer) Tokenize(text string) []Token {
	if text == "" || t == nil || t.kg == nil {
		return nil
	}
	return convertKagomeTokens(t.kg.Tokenize(text), t.dict)
}

func convertKagomeTokens(ktoks []tokenizer.Token, d Dictionary) []Token {
	out := make([]Token, 0, len(ktoks))
	for _, kt := range ktoks {
		tok := Token{Text: kt.Surface}
		if d == UniDic {
			// UniDic carries no surface reading, only the pronunciation and
			// the reading of the lemma.
			tok.Pronunciation = feature(kt, uni.Pron)
			tok.Reading = readingFromPronunciation(kt.Surface, tok.Pronunciation, feature(kt, uni.LForm))
		} else {
			tok.Reading, _ = kt.Reading()
			tok.Pronunciation, _ = kt.Pronunciation()
		}
		out = append(out, tok)
	}
	return out
}

func feature(kt tokenizer.Token, i int) string {
	v, ok := kt.FeatureAt(i)
	if !ok {
		return ""
	}
	return v
}

// readingFromPronunciation turns a pronunciation such as センセー back into a
// reading. Each ー is replaced by the kana at the same offset from the end of
// the surface, or else by the lemma reading when it has the same length.
func readingFromPronunciation(surface, pron, lemmaReading string) string {
	if !strings.ContainsRune(pron, longVowel) {
		return pron
	}
	p := []rune(pron)
	s := []rune(surface)
	l := []rune(lemmaReading)
	for i, r := range p {
		if r != longVowel {
			continue
		}
		if k := len(s) - (len(p) - i); k >= 0 && s[k] != longVowel && kana.IsKana(s[k]) {
			p[i] = []rune(kana.HiraganaToKatakana(string(s[k])))[0]
			continue
		}
		if len(l) == len(p) && l[i] != longVowel {
			p[i] = l[i]
		}
	}
	return string(p)
}
