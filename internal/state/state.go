// Package state persists user preferences between runs as a flat YAML map.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ThemeKey stores the selected theme ID.
const ThemeKey = "json-beautifier-theme"

// State is the persisted key-value map.
type State map[string]interface{}

// Store reads and writes a State at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store backed by path. An empty path selects DefaultPath.
func NewStore(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{path: path}, nil
}

// DefaultPath returns jsonbeautifier/state.yml under the user config
// directory ($XDG_CONFIG_HOME on Linux).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, "jsonbeautifier", "state.yml"), nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load loads the state from the state file.
// Returns an empty state if the file doesn't exist.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	if state == nil {
		state = make(State)
	}
	return state, nil
}

// Save writes the state file, creating its directory.
func (s *Store) Save(state State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// GetString returns the string stored under key. It returns "" when the
// key is missing or holds something else.
func (s *Store) GetString(key string) (string, error) {
	state, err := s.Load()
	if err != nil {
		return "", err
	}
	str, _ := state[key].(string)
	return str, nil
}

// SetString stores value under key, keeping every other key.
func (s *Store) SetString(key, value string) error {
	state, err := s.Load()
	if err != nil {
		return err
	}
	state[key] = value
	return s.Save(state)
}

// Delete removes key from the state.
func (s *Store) Delete(key string) error {
	state, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := state[key]; !ok {
		return nil
	}
	delete(state, key)
	return s.Save(state)
}
