package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ContextKind tags the concrete variant of a Context.
type ContextKind string

// Context kinds.
const (
	ContextKindCase          ContextKind = "case"
	ContextKindDocument      ContextKind = "document"
	ContextKindQualification ContextKind = "qualification"
	ContextKindGeneral       ContextKind = "general"
)

// Context is the payload describing what the user is currently working on,
// threaded between sections. Exactly one variant is carried at a time;
// section views switch on the concrete type instead of duck-typing.
type Context interface {
	Kind() ContextKind
}

// CaseContext points at a selected case.
type CaseContext struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Kind implements Context.
func (CaseContext) Kind() ContextKind { return ContextKindCase }

// DocumentContext points at a generated document.
type DocumentContext struct {
	Doc GeneratedFile `json:"doc"`
}

// Kind implements Context.
func (DocumentContext) Kind() ContextKind { return ContextKindDocument }

// QualificationContext carries a qualification under analysis.
type QualificationContext struct {
	Qualification string `json:"qualification"`
	Article       string `json:"article,omitempty"`
}

// Kind implements Context.
func (QualificationContext) Kind() ContextKind { return ContextKindQualification }

// GeneralContext is the catch-all payload with no selection.
type GeneralContext struct{}

// Kind implements Context.
func (GeneralContext) Kind() ContextKind { return ContextKindGeneral }

// contextEnvelope is the persisted wire form: {"type": ..., "data": {...}}.
type contextEnvelope struct {
	Type ContextKind     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

var jsonNull = []byte("null")

// MarshalContext serializes a context into its tagged envelope form.
// A nil context marshals to JSON null.
func MarshalContext(c Context) ([]byte, error) {
	if c == nil {
		return jsonNull, nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal context data: %w", err)
	}
	return json.Marshal(contextEnvelope{Type: c.Kind(), Data: data})
}

// UnmarshalContext deserializes a tagged envelope back into its variant.
// JSON null and empty input yield a nil context.
func UnmarshalContext(b []byte) (Context, error) {
	if len(b) == 0 || bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		return nil, nil
	}
	var env contextEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("unmarshal context envelope: %w", err)
	}
	switch env.Type {
	case ContextKindCase:
		var c CaseContext
		if err := json.Unmarshal(env.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal case context: %w", err)
		}
		return c, nil
	case ContextKindDocument:
		var c DocumentContext
		if err := json.Unmarshal(env.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal document context: %w", err)
		}
		return c, nil
	case ContextKindQualification:
		var c QualificationContext
		if err := json.Unmarshal(env.Data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal qualification context: %w", err)
		}
		return c, nil
	case ContextKindGeneral:
		return GeneralContext{}, nil
	default:
		return nil, fmt.Errorf("unknown context type %q", env.Type)
	}
}
