// Package state maintains the client's optimistic local count and its
// reconciliation with the server.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// State is the locally persisted client state. The JSON keys match the
// browser localStorage keys of the original web client.
type State struct {
	UserID          uint   `json:"userId"`
	Token           string `json:"token,omitempty"`
	LocalCount      uint   `json:"localCount"`
	LastSyncedCount uint   `json:"lastSyncedCount"`
}

// Store persists State as a JSON file.
// Reads and writes are synchronous; a single client process is assumed.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted state. A missing file yields a zero state, not an
// error, so a fresh install starts logged out with a count of zero.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return &st, nil
}

// Save writes the state atomically-enough for a single-process client:
// parent directories are created on demand.
func (s *Store) Save(st *State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Clear removes the state file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}
