// Package service contains the business logic for the Doodle Diary.
// Services enforce the data-model invariants and orchestrate repo and
// gateway calls. No SQL and no HTTP live here.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/doodle-diary/internal/domain"
	"github.com/pkordes/doodle-diary/internal/repo"
)

// HistoryStore holds the ordered entry history, newest first.
//
// The in-memory sequence is the source of truth while the process runs; the
// full sequence is persisted through the repo as a side effect of every
// mutation, so callers never issue an explicit save. Persistence is
// synchronous relative to the caller's next read: when Add or Remove returns
// nil, the stored blob already reflects the change.
//
// HistoryStore is safe for concurrent use.
type HistoryStore struct {
	repo repo.HistoryRepo

	mu      sync.Mutex
	entries []domain.DoodleEntry
}

// NewHistoryStore constructs a HistoryStore and loads the persisted history.
// A missing or corrupt blob loads as an empty history (the repo swallows
// corruption); only real storage failures propagate.
func NewHistoryStore(ctx context.Context, r repo.HistoryRepo) (*HistoryStore, error) {
	entries, err := r.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.HistoryStore: load: %w", err)
	}
	return &HistoryStore{repo: r, entries: entries}, nil
}

// Add prepends entry to the history and persists the full updated sequence.
// Insertion always places the new entry at the front; there is no other
// ordering rule. If persistence fails the in-memory sequence is rolled back
// so memory and storage never diverge.
func (s *HistoryStore) Add(ctx context.Context, entry domain.DoodleEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]domain.DoodleEntry, 0, len(s.entries)+1)
	updated = append(updated, entry)
	updated = append(updated, s.entries...)

	if err := s.repo.Save(ctx, updated); err != nil {
		return fmt.Errorf("service.HistoryStore.Add: %w", err)
	}
	s.entries = updated
	return nil
}

// Remove deletes the entry with the given id and persists the result.
// Relative order of the remaining entries is unchanged. Removing an absent
// id is a silent no-op: nothing is persisted and no error is returned.
func (s *HistoryStore) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]domain.DoodleEntry, 0, len(s.entries))
	found := false
	for _, e := range s.entries {
		if e.ID == id {
			found = true
			continue
		}
		updated = append(updated, e)
	}
	if !found {
		return nil
	}

	if err := s.repo.Save(ctx, updated); err != nil {
		return fmt.Errorf("service.HistoryStore.Remove: %w", err)
	}
	s.entries = updated
	return nil
}

// Get returns the entry with the given id.
// Returns domain.ErrNotFound if no such entry exists.
func (s *HistoryStore) Get(id uuid.UUID) (domain.DoodleEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.DoodleEntry{}, fmt.Errorf("service.HistoryStore.Get: %w", domain.ErrNotFound)
}

// Entries returns a copy of the history in order, newest first.
// The copy is safe for the caller to iterate while mutations continue.
func (s *HistoryStore) Entries() []domain.DoodleEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.DoodleEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries in the history.
func (s *HistoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
