// Package wordlist loads word packs from files.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Section is a named group of words in a pack file.
type Section struct {
	Name  string
	Words []string
}

// DefaultSection names words listed before any header.
const DefaultSection = "Words"

// LoadSections reads a pack file. A line "[Name]" starts a section; blank
// lines and lines starting with '#' are skipped. Words are upper-cased.
func LoadSections(path string) ([]Section, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var sections []Section
	current := -1
	total := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sections = append(sections, Section{Name: strings.TrimSpace(line[1 : len(line)-1])})
			current = len(sections) - 1
			continue
		}
		if current < 0 {
			sections = append(sections, Section{Name: DefaultSection})
			current = 0
		}
		sections[current].Words = append(sections[current].Words, strings.ToUpper(line))
		total++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return sections, nil
}
