package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/zangerai/zanger/internal/store"
)

// ChatMessage is one transcript entry for an assistant panel.
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript returns the persisted chat history for an assistant. A
// corrupt blob is purged and treated as empty.
func (s *Service) Transcript(ctx context.Context, assistant Assistant) ([]ChatMessage, error) {
	key := store.KeyPrefixChatHistory + string(assistant)
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var msgs []ChatMessage
	if err := json.Unmarshal(raw, &msgs); err != nil {
		slog.Warn("Corrupt chat transcript, resetting", "assistant", assistant, "error", err)
		if delErr := s.kv.Delete(ctx, key); delErr != nil {
			slog.Warn("Failed to purge corrupt transcript", "assistant", assistant, "error", delErr)
		}
		return nil, nil
	}
	return msgs, nil
}

// LatestOutput returns the last generated artifact text for an assistant.
func (s *Service) LatestOutput(ctx context.Context, assistant Assistant) (string, error) {
	raw, ok, err := s.kv.Get(ctx, store.KeyPrefixGeneratedOutputs+string(assistant))
	if err != nil || !ok {
		return "", err
	}
	var out string
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", nil
	}
	return out, nil
}

func (s *Service) appendTranscript(ctx context.Context, assistant Assistant, msg ChatMessage) error {
	msgs, err := s.Transcript(ctx, assistant)
	if err != nil {
		return err
	}
	msgs = append(msgs, msg)

	raw, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	return s.kv.Set(ctx, store.KeyPrefixChatHistory+string(assistant), raw)
}

func (s *Service) storeOutput(ctx context.Context, assistant Assistant, output string) error {
	raw, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	return s.kv.Set(ctx, store.KeyPrefixGeneratedOutputs+string(assistant), raw)
}
