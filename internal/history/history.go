// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps recent evaluations in memory, newest first.
// Nothing is persisted; a restart starts from an empty list.
package history

import (
	"sync"

	"github.com/pdiddy/innovation-engine/pkg/types"
)

// Entry pairs an evaluation with the idea it scored.
type Entry struct {
	Idea       types.InnovationIdea   `json:"idea"`
	Evaluation types.EvaluationResult `json:"evaluation"`
}

// Store is a bounded, concurrency-safe evaluation history.
type Store struct {
	mu      sync.RWMutex
	limit   int
	entries []Entry // newest first
}

// New returns a Store holding at most limit entries. A non-positive limit
// uses types.DefaultHistorySize.
func New(limit int) *Store {
	if limit <= 0 {
		limit = types.DefaultHistorySize
	}
	return &Store{limit: limit}
}

// Add records an evaluation, evicting the oldest entry when full.
func (s *Store) Add(idea types.InnovationIdea, result types.EvaluationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]Entry{{Idea: idea, Evaluation: result}}, s.entries...)
	if len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}
}

// List returns a copy of the history, newest first.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry whose evaluation has the given ID.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.Evaluation.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Len reports the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
