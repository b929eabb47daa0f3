// Package wordlist provides word list filtering helpers.
package wordlist

import "strings"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for word lists.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "en":
		return filterEnglishLetters
	default:
		return func(word string) bool { return word != "" }
	}
}

// Apply keeps the words f accepts.
func Apply(words []string, f FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if f(w) {
			out = append(out, w)
		}
	}
	return out
}

func filterEnglishLetters(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'A' || ch > 'Z' {
			return false
		}
	}
	return true
}
