package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestContextEnvelopeRoundTrip(t *testing.T) {
	contexts := []Context{
		CaseContext{ID: "case-001", Name: "Уголовное дело №1-45/2024", Type: "Экономическое преступление"},
		DocumentContext{Doc: GeneratedFile{ID: "doc-1", Name: "Акт.pdf", Type: "Процессуальный документ", Size: "2.1 MB"}},
		QualificationContext{Qualification: "ст. 190 УК РК", Article: "190"},
		GeneralContext{},
	}

	for _, c := range contexts {
		raw, err := MarshalContext(c)
		require.NoError(t, err)

		got, err := UnmarshalContext(raw)
		require.NoError(t, err)
		require.Equal(t, c, got, "kind %s", c.Kind())
	}
}

func TestNilContextMarshalsToNull(t *testing.T) {
	raw, err := MarshalContext(nil)
	require.NoError(t, err)
	require.Equal(t, "null", string(raw))

	for _, input := range [][]byte{nil, []byte("null"), []byte(" null ")} {
		got, err := UnmarshalContext(input)
		require.NoError(t, err)
		require.Nil(t, got)
	}
}

func TestUnmarshalContextRejectsUnknownType(t *testing.T) {
	_, err := UnmarshalContext([]byte(`{"type":"galaxy","data":{}}`))
	require.Error(t, err)
}

func TestHistoryEntryJSONRoundTrip(t *testing.T) {
	ts := time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)
	entry := HistoryEntry{
		ID:           "entry-1",
		CaseID:       "case-001",
		CaseName:     "Уголовное дело №1-45/2024",
		DocumentType: "Обвинительный акт",
		Timestamp:    ts,
		Context:      CaseContext{ID: "case-001", Name: "Уголовное дело №1-45/2024", Type: "Экономическое преступление"},
		Section:      SectionQualification,
		Persistent:   true,
		LastAccessed: ts.Add(time.Hour),
	}

	raw, err := json.Marshal(entry)
	require.NoError(t, err)

	// The persisted form uses the storage blob's field names.
	require.Contains(t, string(raw), `"caseId"`)
	require.Contains(t, string(raw), `"lastAccessed"`)

	var got HistoryEntry
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, entry.ID, got.ID)
	require.Equal(t, entry.Context, got.Context)
	require.True(t, got.Timestamp.Equal(entry.Timestamp))
	require.True(t, got.LastAccessed.Equal(entry.LastAccessed))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"iin": "must contain exactly 12 digits", "fio": "required"}}
	require.Equal(t, "validation failed: fio, iin", err.Error())

	require.Equal(t, "validation failed", (&ValidationError{}).Error())
}
