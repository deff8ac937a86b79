package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"purse/internal/core"
	ports "purse/internal/sheets"
)

// Store is an in-memory week log used in tests and local development.
type Store struct {
	mu      sync.Mutex
	entries []core.WeekLogEntry
}

var _ ports.WeekLogWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// AppendWeekLog stores the entry and returns a synthetic row reference.
func (s *Store) AppendWeekLog(_ context.Context, entry core.WeekLogEntry) (string, error) {
	if entry.WeekIdentifier == "" || entry.Event == "" {
		return "", errors.New("week identifier and event are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return fmt.Sprintf("mem:%d", len(s.entries)), nil
}

// Entries returns a copy of everything appended so far.
func (s *Store) Entries() []core.WeekLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.WeekLogEntry(nil), s.entries...)
}
