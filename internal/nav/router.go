// Package nav implements the navigation/context router, the hub that
// coordinates the active section, the selected case, the threaded context
// payload, and the breadcrumb trail.
package nav

import (
	"context"
	"log/slog"
	"sync"

	"github.com/zangerai/zanger/internal/domain"
	"github.com/zangerai/zanger/internal/history"
	"github.com/zangerai/zanger/internal/registry"
)

// DefaultDocumentType is used when a case selection names no document type.
const DefaultDocumentType = "General"

// Option configures a Router.
type Option func(*Router)

// WithOnChange installs a callback invoked after every state mutation.
// Section views subscribe here instead of polling.
func WithOnChange(fn func(domain.NavigationState)) Option {
	return func(r *Router) { r.onChange = fn }
}

// WithOnOverlayClose installs the callback that dismisses the
// case-creation overlay after a successful AddNewCase.
func WithOnOverlayClose(fn func()) Option {
	return func(r *Router) { r.onOverlayClose = fn }
}

// Router owns the navigation state. All operations are total: unknown
// cases, empty history, and malformed inputs degrade to safe defaults
// instead of raising.
type Router struct {
	reg *registry.Registry
	log *history.Log

	mu    sync.Mutex
	state domain.NavigationState

	onChange       func(domain.NavigationState)
	onOverlayClose func()
}

// New creates a router starting at the overview section.
func New(reg *registry.Registry, log *history.Log, opts ...Option) *Router {
	r := &Router{
		reg:   reg,
		log:   log,
		state: domain.NavigationState{ActiveSection: domain.SectionOverview},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns a copy of the current navigation state.
func (r *Router) State() domain.NavigationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Transition activates a section. The context is sticky: it survives a
// section hop unless the caller supplies a replacement. The breadcrumb is
// not: omitting it resets the trail to top level, so the visible trail
// always reflects the explicit path the caller specified.
func (r *Router) Transition(section domain.Section, ctx domain.Context, breadcrumb []string) {
	if section == "" {
		section = domain.SectionOverview
	}

	r.mu.Lock()
	r.state.ActiveSection = section
	if ctx != nil {
		r.state.Context = ctx
	}
	if breadcrumb != nil {
		r.state.Breadcrumb = append([]string(nil), breadcrumb...)
	} else {
		r.state.Breadcrumb = nil
	}
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.notify(snapshot)
}

// SelectCase makes a case current and threads a case context. When the
// active section produces generations, the selection is also recorded in
// the history log. An unknown case id is a benign stale reference and the
// call is a no-op.
func (r *Router) SelectCase(ctx context.Context, caseID, documentType string) {
	if documentType == "" {
		documentType = DefaultDocumentType
	}

	c, err := r.reg.Get(caseID)
	if err != nil {
		slog.Debug("Ignoring selection of unknown case", "case_id", caseID)
		return
	}

	caseCtx := domain.CaseContext{ID: c.ID, Name: c.Name, Type: c.Type}

	r.mu.Lock()
	r.state.SelectedCaseID = caseID
	r.state.Context = caseCtx
	section := r.state.ActiveSection
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	if producesGenerations(section) {
		if _, err := r.log.Append(ctx, c.ID, c.Name, documentType, section, caseCtx); err != nil {
			slog.Warn("Failed to record generation history", "case_id", caseID, "error", err)
		}
	}

	r.notify(snapshot)
}

// NavigateToHistoryEntry reopens a past generation: the entry's case
// becomes current, the AI system section is activated with the entry's
// context, and the entry's last-accessed time is refreshed.
func (r *Router) NavigateToHistoryEntry(ctx context.Context, entry domain.HistoryEntry) {
	r.mu.Lock()
	r.state.SelectedCaseID = entry.CaseID
	r.state.ActiveSection = domain.SectionAISystem
	r.state.Context = entry.Context
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	if err := r.log.Touch(ctx, entry.ID); err != nil {
		slog.Warn("Failed to touch history entry", "entry_id", entry.ID, "error", err)
	}

	r.notify(snapshot)
}

// AddNewCase creates a case from an intake draft. On success the new case
// becomes selected and the case-creation overlay is dismissed. Validation
// failures are returned for the form layer to re-present; nothing is
// created or selected.
func (r *Router) AddNewCase(draft domain.CaseDraft) (domain.Case, error) {
	c, err := r.reg.Create(draft)
	if err != nil {
		return domain.Case{}, err
	}

	r.mu.Lock()
	r.state.SelectedCaseID = c.ID
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	if r.onOverlayClose != nil {
		r.onOverlayClose()
	}
	r.notify(snapshot)
	return c, nil
}

// OpenCaseDocuments activates the per-case documents section with a
// two-level breadcrumb. The trail labels come from the caller (the view
// layer owns display strings); when omitted, section names are used.
func (r *Router) OpenCaseDocuments(caseID string, trail ...string) {
	if len(trail) == 0 {
		label := string(domain.SectionDocumentsCase)
		if c, err := r.reg.Get(caseID); err == nil {
			label += " - " + c.Name
		}
		trail = []string{string(domain.SectionCases), label}
	}

	r.mu.Lock()
	if caseID != "" {
		r.state.SelectedCaseID = caseID
	}
	r.state.ActiveSection = domain.SectionDocumentsCase
	r.state.Breadcrumb = append([]string(nil), trail...)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.notify(snapshot)
}

func (r *Router) snapshotLocked() domain.NavigationState {
	s := r.state
	s.Breadcrumb = append([]string(nil), r.state.Breadcrumb...)
	return s
}

func (r *Router) notify(s domain.NavigationState) {
	if r.onChange != nil {
		r.onChange(s)
	}
}

// producesGenerations reports whether selecting a case in the section
// yields an AI-generated artifact worth logging.
func producesGenerations(s domain.Section) bool {
	switch s {
	case domain.SectionQualification, domain.SectionAISystem, domain.SectionDocuments:
		return true
	default:
		return false
	}
}
