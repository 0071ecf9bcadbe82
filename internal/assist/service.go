// Package assist implements the simulated document-generation assistants.
//
// Responses come from an ordered keyword-rule table over canned templates;
// the artificial latency is a cancellable delayed task per panel slot, so
// a newer request invalidates a pending one before it can apply a stale
// result.
package assist

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zangerai/zanger/internal/config"
	"github.com/zangerai/zanger/internal/domain"
	"github.com/zangerai/zanger/internal/store"
)

// DefaultTabID is used when a request names no browser tab.
const DefaultTabID = "default"

// EventStatus is the lifecycle phase of a generation request.
type EventStatus string

// Event statuses.
const (
	EventStarted   EventStatus = "started"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// Event is one generation lifecycle notification delivered to subscribers.
type Event struct {
	RequestID string      `json:"requestId"`
	Assistant Assistant   `json:"assistant"`
	TabID     string      `json:"tabId"`
	Status    EventStatus `json:"status"`
	Reply     string      `json:"reply,omitempty"`
	Output    string      `json:"output,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Request asks an assistant to respond to a message.
type Request struct {
	Assistant Assistant       `json:"assistant"`
	TabID     string          `json:"tabId"`
	Message   string          `json:"message"`
	Language  domain.Language `json:"language"`
}

// Recorder reports a started generation to the history surface. The
// document type describes the interaction the way the history sidebar
// displays it.
type Recorder func(ctx context.Context, documentType string)

// Option configures a Service.
type Option func(*Service)

// WithRecorder installs the history recorder callback.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

type pendingGeneration struct {
	id     string
	cancel chan struct{}
}

// Service schedules and delivers simulated generations.
type Service struct {
	kv       store.KV
	rules    map[Assistant]*Ruleset
	delay    time.Duration
	jitter   time.Duration
	recorder Recorder

	mu      sync.Mutex
	pending map[string]*pendingGeneration
	subs    map[string]map[int]chan Event
	nextSub int

	wg sync.WaitGroup
}

// NewService creates the assistant service with the embedded rule tables.
func NewService(kv store.KV, gen config.GenerationConfig, opts ...Option) (*Service, error) {
	rules, err := LoadRulesets()
	if err != nil {
		return nil, err
	}

	s := &Service{
		kv:      kv,
		rules:   rules,
		delay:   gen.Delay,
		jitter:  gen.Jitter,
		pending: make(map[string]*pendingGeneration),
		subs:    make(map[string]map[int]chan Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate records the user message and schedules a delayed completion.
// A request for a slot (assistant + tab) that already has a pending
// generation cancels the older one first. Returns the request id.
func (s *Service) Generate(ctx context.Context, req Request) (string, error) {
	rs, ok := s.rules[req.Assistant]
	if !ok {
		return "", fmt.Errorf("unknown assistant %q", req.Assistant)
	}
	if req.Message == "" {
		return "", fmt.Errorf("message cannot be empty")
	}
	if req.TabID == "" {
		req.TabID = DefaultTabID
	}
	if !req.Language.Valid() {
		req.Language = domain.LanguageRU
	}

	now := time.Now()
	if err := s.appendTranscript(ctx, req.Assistant, ChatMessage{
		Role:      "user",
		Content:   req.Message,
		Timestamp: now,
	}); err != nil {
		return "", err
	}

	if s.recorder != nil {
		s.recorder(ctx, documentTypeFor(req.Assistant, req.Message))
	}

	id := uuid.NewString()
	slot := string(req.Assistant) + "|" + req.TabID
	cancel := make(chan struct{})

	s.mu.Lock()
	if old, ok := s.pending[slot]; ok {
		close(old.cancel)
	}
	s.pending[slot] = &pendingGeneration{id: id, cancel: cancel}
	s.mu.Unlock()

	s.publish(Event{
		RequestID: id,
		Assistant: req.Assistant,
		TabID:     req.TabID,
		Status:    EventStarted,
		Timestamp: now,
	})

	s.wg.Add(1)
	go s.complete(id, slot, req, rs, cancel)

	return id, nil
}

func (s *Service) complete(id, slot string, req Request, rs *Ruleset, cancel chan struct{}) {
	defer s.wg.Done()

	delay := s.delay
	if s.jitter > 0 {
		delay += time.Duration(rand.Int64N(int64(s.jitter)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-cancel:
		s.publish(Event{
			RequestID: id,
			Assistant: req.Assistant,
			TabID:     req.TabID,
			Status:    EventCancelled,
			Timestamp: time.Now(),
		})
		return
	case <-timer.C:
	}

	// The slot may have been taken over between the timer firing and this
	// point; a stale completion must not apply its result.
	s.mu.Lock()
	p, owned := s.pending[slot]
	if owned && p.id == id {
		delete(s.pending, slot)
	}
	s.mu.Unlock()
	if !owned || p.id != id {
		s.publish(Event{
			RequestID: id,
			Assistant: req.Assistant,
			TabID:     req.TabID,
			Status:    EventCancelled,
			Timestamp: time.Now(),
		})
		return
	}

	tmpl := rs.Match(req.Message)
	reply := tmpl.Reply(req.Language)
	output := tmpl.Output(req.Language)

	// The request context died with the HTTP request; persistence of the
	// completed exchange happens on its own context.
	ctx := context.Background()

	if err := s.appendTranscript(ctx, req.Assistant, ChatMessage{
		Role:      "assistant",
		Content:   reply,
		Timestamp: time.Now(),
	}); err != nil {
		slog.Warn("Failed to persist assistant reply", "assistant", req.Assistant, "error", err)
	}
	if output != "" {
		if err := s.storeOutput(ctx, req.Assistant, output); err != nil {
			slog.Warn("Failed to persist generated output", "assistant", req.Assistant, "error", err)
		}
	}

	s.publish(Event{
		RequestID: id,
		Assistant: req.Assistant,
		TabID:     req.TabID,
		Status:    EventCompleted,
		Reply:     reply,
		Output:    output,
		Timestamp: time.Now(),
	})
}

// Subscribe registers a listener for one tab's generation events. The
// returned func unsubscribes; slow listeners drop events rather than
// block generation.
func (s *Service) Subscribe(tabID string) (<-chan Event, func()) {
	if tabID == "" {
		tabID = DefaultTabID
	}
	ch := make(chan Event, 16)

	s.mu.Lock()
	if s.subs[tabID] == nil {
		s.subs[tabID] = make(map[int]chan Event)
	}
	sub := s.nextSub
	s.nextSub++
	s.subs[tabID][sub] = ch
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		if listeners, ok := s.subs[tabID]; ok {
			delete(listeners, sub)
			if len(listeners) == 0 {
				delete(s.subs, tabID)
			}
		}
		s.mu.Unlock()
	}
}

// Close cancels all pending generations and waits for them to settle.
func (s *Service) Close() {
	s.mu.Lock()
	for slot, p := range s.pending {
		close(p.cancel)
		delete(s.pending, slot)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Service) publish(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs[ev.TabID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// documentTypeFor reproduces the history label the original dashboard
// used for chat-driven generations.
func documentTypeFor(assistant Assistant, message string) string {
	runes := []rune(message)
	if len(runes) > 50 {
		message = string(runes[:50]) + "..."
	}
	return fmt.Sprintf("AI %s: %s", assistant, message)
}
