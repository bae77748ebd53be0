package domain

import "context"

// StateKey is the namespaced key under which the form client persists its state.
const StateKey = "event-storage"

// PersistedState is the reload-durable part of the form client state.
type PersistedState struct {
	EventForm     EventForm                 `json:"eventForm"`
	DraftID       string                    `json:"draftId,omitempty"`
	ActiveModules []ModuleRef               `json:"activeModules"`
	ModuleData    map[string]map[string]any `json:"moduleData"`
}

// StateStorage is a key/value store for serialized client state.
// Load returns ErrNotFound when nothing is stored under key.
type StateStorage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
