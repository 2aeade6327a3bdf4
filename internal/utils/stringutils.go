package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaskRune is shown in place of every hidden letter of a word.
const MaskRune = '_'

// NormalizeString converts to lowercase, trims surrounding whitespace and removes accents.
func NormalizeString(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// SameWord reports whether a guess matches a word, ignoring case, accents and
// surrounding whitespace.
func SameWord(guess, word string) bool {
	if word == "" {
		return false
	}
	return NormalizeString(guess) == NormalizeString(word)
}

// LetterCount returns the number of characters in a word, counted in runes.
func LetterCount(word string) int {
	return utf8.RuneCountInString(word)
}

// MaskWord hides every letter of word except the rune positions in revealed.
// Spaces and hyphens stay visible so guessers can see the word's shape.
func MaskWord(word string, revealed map[int]bool) string {
	var b strings.Builder
	i := 0
	for _, r := range word {
		switch {
		case r == ' ' || r == '-':
			b.WriteRune(r)
		case revealed[i]:
			b.WriteRune(r)
		default:
			b.WriteRune(MaskRune)
		}
		i++
	}
	return b.String()
}
