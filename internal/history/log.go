// Package history keeps the persisted log of past generation interactions.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zangerai/zanger/internal/domain"
	"github.com/zangerai/zanger/internal/store"
)

// DefaultLimit caps the log at the 100 most recent entries.
const DefaultLimit = 100

// Log is an append-bounded, persisted list of generation events, ordered
// strictly by creation recency (newest first). Touching an entry never
// changes its position.
type Log struct {
	kv    store.KV
	limit int

	mu      sync.Mutex
	entries []domain.HistoryEntry

	now func() time.Time
}

// NewLog creates a log backed by the given store and loads persisted
// entries. A corrupt persisted blob is treated as an empty log.
func NewLog(ctx context.Context, kv store.KV, limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	l := &Log{kv: kv, limit: limit, now: time.Now}

	raw, ok, err := kv.Get(ctx, store.KeyGenerationHistory)
	if err != nil {
		slog.Warn("Failed to load generation history", "error", err)
		return l
	}
	if !ok {
		return l
	}
	if err := json.Unmarshal(raw, &l.entries); err != nil {
		slog.Warn("Corrupt generation history, resetting to empty", "error", err)
		l.entries = nil
	}
	if len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}
	return l
}

// Append records a new generation event at the front of the log,
// truncates to the limit, and persists the result.
func (l *Log) Append(ctx context.Context, caseID, caseName, documentType string, section domain.Section, c domain.Context) (domain.HistoryEntry, error) {
	now := l.now()
	entry := domain.HistoryEntry{
		ID:           uuid.NewString(),
		CaseID:       caseID,
		CaseName:     caseName,
		DocumentType: documentType,
		Timestamp:    now,
		Context:      c,
		Section:      section,
		Persistent:   true,
		LastAccessed: now,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]domain.HistoryEntry{entry}, l.entries...)
	if len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}

	if err := l.persistLocked(ctx); err != nil {
		return domain.HistoryEntry{}, err
	}
	return entry, nil
}

// Remove deletes an entry by id and persists the remainder. Removing an
// absent id is a no-op.
func (l *Log) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return l.persistLocked(ctx)
		}
	}
	return nil
}

// Touch updates an entry's last-accessed time without changing its
// position, then persists. Touching an absent id is a no-op.
func (l *Log) Touch(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].LastAccessed = l.now()
			return l.persistLocked(ctx)
		}
	}
	return nil
}

// Get looks up an entry by id.
func (l *Log) Get(id string) (domain.HistoryEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.HistoryEntry{}, false
}

// List returns the entries newest-first.
func (l *Log) List() []domain.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.HistoryEntry(nil), l.entries...)
}

func (l *Log) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(l.entries)
	if err != nil {
		return fmt.Errorf("marshal generation history: %w", err)
	}
	if err := l.kv.Set(ctx, store.KeyGenerationHistory, raw); err != nil {
		return fmt.Errorf("persist generation history: %w", err)
	}
	return nil
}
