// Package store provides key-value persistence for the application state.
//
// Every mutating operation in the app writes through to the store
// immediately, so a reload never observes stale partial state. Values are
// opaque JSON blobs; a consumer that finds an undecodable blob treats it
// as absent, purges it, and continues with defaults.
package store

import "context"

// Well-known keys. The layout mirrors the browser local-storage entries
// the frontend reads.
const (
	KeyCurrentUser       = "currentUser"
	KeyLanguage          = "language"
	KeyTheme             = "theme"
	KeyGenerationHistory = "generationHistory"
	KeySidebarCollapsed  = "sidebarCollapsed"

	// Per-assistant transcript keys are composed as prefix + assistant id.
	KeyPrefixChatHistory      = "aiChatHistory:"
	KeyPrefixGeneratedOutputs = "aiGeneratedOutputs:"
)

// KV is the persistence interface all application stores write through.
type KV interface {
	// Get retrieves the value for a key. The second return is false when
	// the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value under a key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying database.
	Close() error
}
