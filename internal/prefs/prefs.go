// Package prefs holds the persisted user preferences.
package prefs

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/zangerai/zanger/internal/domain"
	"github.com/zangerai/zanger/internal/store"
)

// Store keeps language, theme, and sidebar state, writing every change
// through to persistence immediately.
type Store struct {
	kv store.KV

	mu               sync.Mutex
	prefs            domain.Preferences
	sidebarCollapsed bool
}

// NewStore creates a preference store and loads persisted values,
// applying defaults for anything absent or unreadable.
func NewStore(ctx context.Context, kv store.KV) *Store {
	s := &Store{kv: kv, prefs: domain.DefaultPreferences()}

	if raw, ok, err := kv.Get(ctx, store.KeyLanguage); err == nil && ok {
		if lang := domain.Language(raw); lang.Valid() {
			s.prefs.Language = lang
		}
	}
	if raw, ok, err := kv.Get(ctx, store.KeyTheme); err == nil && ok {
		if theme := domain.Theme(raw); theme.Valid() {
			s.prefs.Theme = theme
		}
	}
	if raw, ok, err := kv.Get(ctx, store.KeySidebarCollapsed); err == nil && ok {
		if collapsed, err := strconv.ParseBool(string(raw)); err == nil {
			s.sidebarCollapsed = collapsed
		}
	}

	return s
}

// Preferences returns the current preferences.
func (s *Store) Preferences() domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// SetLanguage selects a language and persists it. Idempotent.
func (s *Store) SetLanguage(ctx context.Context, lang domain.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("unsupported language %q", lang)
	}

	s.mu.Lock()
	s.prefs.Language = lang
	s.mu.Unlock()

	return s.kv.Set(ctx, store.KeyLanguage, []byte(lang))
}

// SetTheme selects a theme and persists it. Idempotent. The render layer
// applies the visual variant; the value here is only stored.
func (s *Store) SetTheme(ctx context.Context, theme domain.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unsupported theme %q", theme)
	}

	s.mu.Lock()
	s.prefs.Theme = theme
	s.mu.Unlock()

	return s.kv.Set(ctx, store.KeyTheme, []byte(theme))
}

// SidebarCollapsed reports the persisted sidebar state.
func (s *Store) SidebarCollapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarCollapsed
}

// SetSidebarCollapsed toggles and persists the sidebar state.
func (s *Store) SetSidebarCollapsed(ctx context.Context, collapsed bool) error {
	s.mu.Lock()
	s.sidebarCollapsed = collapsed
	s.mu.Unlock()

	return s.kv.Set(ctx, store.KeySidebarCollapsed, []byte(strconv.FormatBool(collapsed)))
}
