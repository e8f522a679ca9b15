// Package normalizer turns Spanish text into Snowball stems.
package normalizer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const stemLanguage = "spanish"

// DefaultMinTokenRunes drops single letters left behind by punctuation removal.
const DefaultMinTokenRunes = 2

var nonSpanishLetter = regexp.MustCompile(`[^a-záéíóúüñ\s]`)

// Spanish lower-cases, filters, tokenizes and stems Spanish text.
// It is safe to call concurrently.
type Spanish struct {
	minTokenRunes int
}

// NewSpanish creates a normalizer that keeps tokens of at least minTokenRunes runes.
func NewSpanish(minTokenRunes int) *Spanish {
	if minTokenRunes <= 0 {
		minTokenRunes = DefaultMinTokenRunes
	}
	return &Spanish{minTokenRunes: minTokenRunes}
}

// Normalize returns the stems of text in order, duplicates included.
func (n *Spanish) Normalize(text string) []string {
	tokens := n.Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	stems := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		stem, err := snowball.Stem(tok, stemLanguage, true)
		if err != nil {
			stem = tok
		}
		if stem == "" {
			continue
		}
		stems = append(stems, stem)
	}
	return stems
}

// Tokenize applies every step but stemming.
func (n *Spanish) Tokenize(text string) []string {
	// Casers keep state between calls, so one per call.
	lower := cases.Lower(language.Spanish).String(text)
	cleaned := nonSpanishLetter.ReplaceAllString(lower, " ")
	raw := strings.Fields(cleaned)
	out := raw[:0]
	for _, t := range raw {
		if utf8.RuneCountInString(t) < n.minTokenRunes {
			continue
		}
		out = append(out, t)
	}
	return out
}
