package buffer

import (
	"github.com/pikedit/pike/internal/engine/history"
	"github.com/pikedit/pike/internal/engine/search"
)

// Search operations. A buffer owns at most one active search; the match
// list is computed once at search start and any content mutation discards
// it, so stale offsets are never navigated.

// StartSearch scans the content for query and selects the first match at
// or after the cursor, wrapping to the first match overall. The cursor
// moves to the selected match. Returns the number of matches.
func (b *Buffer) StartSearch(query string, caseSensitive bool) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := search.Start(b.content.String(), query, b.cursor, caseSensitive)
	if err != nil {
		return 0, err
	}

	b.search = s
	if m, ok := s.Current(); ok {
		b.cursor = m.Start
	}
	return s.Count(), nil
}

// NextMatch advances to the next match cyclically and moves the cursor
// there. A no-op when no search is active or the match list is empty.
func (b *Buffer) NextMatch() (search.Match, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.search == nil {
		return search.Match{}, false
	}
	m, ok := b.search.Next()
	if ok {
		b.cursor = m.Start
	}
	return m, ok
}

// PrevMatch retreats to the previous match cyclically and moves the
// cursor there.
func (b *Buffer) PrevMatch() (search.Match, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.search == nil {
		return search.Match{}, false
	}
	m, ok := b.search.Prev()
	if ok {
		b.cursor = m.Start
	}
	return m, ok
}

// EndSearch discards the search state. The cursor stays at its last
// search-driven position.
func (b *Buffer) EndSearch() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.search = nil
}

// SearchActive returns true if a search is in progress.
func (b *Buffer) SearchActive() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.search != nil
}

// Search returns the active search state, or nil. Callers treat the
// returned state as read-only; navigation goes through NextMatch and
// PrevMatch so the cursor follows.
func (b *Buffer) Search() *search.State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.search
}

// ReplaceAll rewrites every occurrence of query with replacement,
// back-to-front so earlier offsets stay valid while editing. Each match
// records a delete and an insert diff, so undo walks the replacement
// back match-by-match. The cursor lands on the first replacement.
// Returns the number of matches replaced.
func (b *Buffer) ReplaceAll(query, replacement string, caseSensitive bool) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	matches, err := search.FindAll(b.content.String(), query, caseSensitive)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, nil
	}

	replacement = normalizeLineEndings(replacement)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		removed := b.content.Slice(m.Start, m.End)
		b.content.Delete(m.Start, m.End)
		b.history.Record(history.Delete(m.Start, removed))
		if replacement != "" {
			b.content.Insert(m.Start, replacement)
			b.history.Record(history.Insert(m.Start, replacement))
		}
	}

	b.cursor = b.clampOffset(matches[0].Start)
	b.modified = b.content.String() != b.saved
	b.search = nil
	return len(matches), nil
}
