// Package session holds the snapshot of the grid contents that downstream
// synchronization reads. The grid container propagates every mutation here
// synchronously; nothing else writes the store.
package session

import (
	"encoding/json"
	"os"

	"github.com/xkazm04/goat/board"
)

// A Store caches the grid contents for external sync.
type Store struct {
	name  string
	state board.GridState
}

// NewStore creates a new session store.
func NewStore(name string) *Store {
	return &Store{name: name}
}

// Name returns the name of the store.
func (s *Store) Name() string {
	return s.name
}

// Update replaces the cached snapshot. Called by the grid container on every
// mutation, before the mutation returns.
func (s *Store) Update(state board.GridState) {
	s.state = state
}

// Snapshot returns the cached grid contents.
func (s *Store) Snapshot() board.GridState {
	return s.state
}

// Save writes the cached snapshot to a file.
func (s *Store) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	return encoder.Encode(s.state)
}

// Load reads a previously saved snapshot from a file. The loaded state is
// returned rather than installed: restoring a session goes through the
// orchestrator so that the grid and backlog stay consistent.
func Load(filename string) (board.GridState, error) {
	file, err := os.Open(filename)
	if err != nil {
		return board.GridState{}, err
	}
	defer file.Close()

	var state board.GridState
	if err := json.NewDecoder(file).Decode(&state); err != nil {
		return board.GridState{}, err
	}

	return state, nil
}
