// Package search implements the in-buffer search state machine: the
// query, the ordered match list, and the current-match pointer.
//
// Matches are computed once when a search starts and are not updated as
// the document changes; the owning buffer discards its search state on
// any content mutation.
package search

import (
	"errors"
	"regexp"
)

// ErrEmptyQuery is returned when a search is started with no query.
var ErrEmptyQuery = errors.New("search query is empty")

// Match is a half-open byte-offset range [Start, End) in the searched text.
type Match struct {
	Start int
	End   int
}

// Len returns the match length in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// State holds one buffer's active search: the query, every match in
// ascending document order, and the index of the current match.
type State struct {
	query         string
	caseSensitive bool
	matches       []Match
	current       int // index into matches, -1 when there are none
}

// Start scans text for all occurrences of query and selects the first
// match at or after the cursor offset, wrapping to the first match
// overall when none follow. The query is matched as an exact substring;
// case sensitivity is a configuration input.
func Start(text, query string, cursor int, caseSensitive bool) (*State, error) {
	matches, err := FindAll(text, query, caseSensitive)
	if err != nil {
		return nil, err
	}

	s := &State{
		query:         query,
		caseSensitive: caseSensitive,
		matches:       matches,
		current:       -1,
	}

	if len(matches) == 0 {
		return s, nil
	}

	s.current = 0
	for i, m := range matches {
		if m.Start >= cursor {
			s.current = i
			break
		}
	}
	return s, nil
}

// FindAll returns every occurrence of query in text as ascending,
// non-overlapping matches. The query is quoted, so it always means an
// exact substring even when it contains pattern metacharacters.
func FindAll(text, query string, caseSensitive bool) ([]Match, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	pattern := regexp.QuoteMeta(query)
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	idx := re.FindAllStringIndex(text, -1)
	matches := make([]Match, 0, len(idx))
	for _, pair := range idx {
		matches = append(matches, Match{Start: pair[0], End: pair[1]})
	}
	return matches, nil
}

// Query returns the search term.
func (s *State) Query() string {
	return s.query
}

// CaseSensitive returns whether the search distinguishes letter case.
func (s *State) CaseSensitive() bool {
	return s.caseSensitive
}

// Count returns the number of matches.
func (s *State) Count() int {
	return len(s.matches)
}

// Matches returns a copy of the match list in ascending document order.
func (s *State) Matches() []Match {
	out := make([]Match, len(s.matches))
	copy(out, s.matches)
	return out
}

// CurrentIndex returns the index of the current match, or -1 when the
// match list is empty.
func (s *State) CurrentIndex() int {
	return s.current
}

// Current returns the current match.
func (s *State) Current() (Match, bool) {
	if s.current < 0 {
		return Match{}, false
	}
	return s.matches[s.current], true
}

// Next advances to the next match, wrapping past the last match back to
// the first. With no matches it reports false; that is a no-op, not an
// error.
func (s *State) Next() (Match, bool) {
	if len(s.matches) == 0 {
		return Match{}, false
	}
	s.current = (s.current + 1) % len(s.matches)
	return s.matches[s.current], true
}

// Prev retreats to the previous match, wrapping before the first match
// to the last.
func (s *State) Prev() (Match, bool) {
	if len(s.matches) == 0 {
		return Match{}, false
	}
	s.current = (s.current - 1 + len(s.matches)) % len(s.matches)
	return s.matches[s.current], true
}
