package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cabinet-advisory/core/agent"
	"github.com/cabinet-advisory/core/store"
)

// Journal is the session-wide append-only conscience log. Entries are never
// deleted during a session; Entries returns defensive copies oldest first.
type Journal struct {
	id      string
	mu      sync.RWMutex
	entries []agent.ConscienceEntry
}

// NewJournal creates an empty Journal with a unique session identifier.
func NewJournal() *Journal {
	return &Journal{id: uuid.Must(uuid.NewV7()).String()}
}

// ID returns the journal's session identifier.
func (j *Journal) ID() string { return j.id }

// Append records one entry. Timestamps default to now when unset.
func (j *Journal) Append(entry agent.ConscienceEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

// Entries returns a copy of the full trail, oldest first.
func (j *Journal) Entries() []agent.ConscienceEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return slices.Clone(j.entries)
}

// Len returns the number of recorded entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Snapshot persists the current trail as JSON under the journal's session
// key, for post-session audit export.
func (j *Journal) Snapshot(ctx context.Context, s store.Store) error {
	data, err := json.MarshalIndent(j.Entries(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}

	key := store.NamespaceJournal + "/" + j.id + ".json"
	if err := s.Save(ctx, store.Entry{Key: key, Value: data}); err != nil {
		return fmt.Errorf("failed to persist journal: %w", err)
	}
	return nil
}
