// Package hangman implements the word guessing game.
package hangman

import (
	"fmt"

	"github.com/verte-zerg/playdeck/internal/wordlist"
)

// LoadLevels reads a word pack file where each "[Name]" section is a level.
// Words that are not plain A-Z are dropped.
func LoadLevels(path string) ([]Level, error) {
	sections, err := wordlist.LoadSections(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load word pack: %w", err)
	}
	filter := wordlist.FilterForLang("en")
	levels := make([]Level, 0, len(sections))
	for _, s := range sections {
		words := wordlist.Apply(s.Words, filter)
		if len(words) == 0 {
			continue
		}
		levels = append(levels, Level{Name: s.Name, Words: words})
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("word pack %s has no playable words", path)
	}
	return levels, nil
}
