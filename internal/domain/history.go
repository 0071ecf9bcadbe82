package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// HistoryEntry records one past generation interaction so the user can
// return to a prior AI session. Entries are ordered strictly by creation
// recency; LastAccessed never changes the position.
type HistoryEntry struct {
	ID           string
	CaseID       string
	CaseName     string
	DocumentType string
	Timestamp    time.Time
	Context      Context
	Section      Section
	Persistent   bool
	LastAccessed time.Time
}

// historyEntryJSON is the persisted form. Field names match the original
// storage blob so timestamps and contexts round-trip losslessly.
type historyEntryJSON struct {
	ID           string          `json:"id"`
	CaseID       string          `json:"caseId"`
	CaseName     string          `json:"caseName"`
	DocumentType string          `json:"documentType"`
	Timestamp    time.Time       `json:"timestamp"`
	Context      json.RawMessage `json:"context,omitempty"`
	Section      Section         `json:"section"`
	Persistent   bool            `json:"persistent"`
	LastAccessed time.Time       `json:"lastAccessed"`
}

// MarshalJSON implements json.Marshaler, encoding the context as its
// tagged envelope.
func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	ctx, err := MarshalContext(e.Context)
	if err != nil {
		return nil, fmt.Errorf("marshal history entry %s: %w", e.ID, err)
	}
	return json.Marshal(historyEntryJSON{
		ID:           e.ID,
		CaseID:       e.CaseID,
		CaseName:     e.CaseName,
		DocumentType: e.DocumentType,
		Timestamp:    e.Timestamp,
		Context:      ctx,
		Section:      e.Section,
		Persistent:   e.Persistent,
		LastAccessed: e.LastAccessed,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *HistoryEntry) UnmarshalJSON(b []byte) error {
	var raw historyEntryJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("unmarshal history entry: %w", err)
	}
	ctx, err := UnmarshalContext(raw.Context)
	if err != nil {
		return fmt.Errorf("unmarshal history entry context: %w", err)
	}
	*e = HistoryEntry{
		ID:           raw.ID,
		CaseID:       raw.CaseID,
		CaseName:     raw.CaseName,
		DocumentType: raw.DocumentType,
		Timestamp:    raw.Timestamp,
		Context:      ctx,
		Section:      raw.Section,
		Persistent:   raw.Persistent,
		LastAccessed: raw.LastAccessed,
	}
	return nil
}
