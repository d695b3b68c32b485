package store

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SearchMatch records one matching line of a secret's decrypted
// content, with the match position within the line.
type SearchMatch struct {
	Line  string
	Start int
	End   int
}

// Find returns the logical names of all secrets whose name contains any
// of the given terms as a substring. A secret matching several terms
// appears once.
func (s *Store) Find(terms []string) ([]string, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	var keys []string
	err := s.Walk("", func(key string) error {
		for _, term := range terms {
			if strings.Contains(key, term) {
				keys = append(keys, key)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Glob returns the logical names of all secrets matching the given
// glob pattern, with ** matching across path separators.
func (s *Store) Glob(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	var keys []string
	err := s.Walk("", func(key string) error {
		ok, err := doublestar.Match(pattern, key)
		if err != nil {
			return err
		}
		if ok {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Search decrypts every secret in the store and matches each line of
// its content against term, compiled as a regular expression. The
// result maps secret names to their matching lines; secrets with no
// matching line are omitted. Each secret is decrypted exactly once.
func (s *Store) Search(term string) (map[string][]SearchMatch, error) {
	regex, err := regexp.Compile(term)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", term, err)
	}

	results := make(map[string][]SearchMatch)
	err = s.Walk("", func(key string) error {
		content, err := s.Get(key)
		if err != nil {
			return err
		}
		for _, line := range strings.Split(content, "\n") {
			if loc := regex.FindStringIndex(line); loc != nil {
				results[key] = append(results[key], SearchMatch{Line: line, Start: loc[0], End: loc[1]})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
