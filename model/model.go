package model

// NoReading is the feature value the dictionaries use for an unknown field.
const NoReading = "*"

// Token is one morpheme as the annotator sees it. Reading is the katakana
// reading of the surface text; Pronunciation is the dictionary's
// pronunciation, which spells long vowels with ー.
type Token struct {
	Text          string `json:"text"`
	Reading       string `json:"reading,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
}

// HasReading reports whether the tokenizer supplied a usable reading.
func (t Token) HasReading() bool {
	return t.Reading != "" && t.Reading != NoReading
}
