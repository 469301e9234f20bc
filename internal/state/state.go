// Package state persists what the wrap hook did so that later hooks, which run as
// separate processes, can find it.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	wetwire "github.com/lex00/wetwire-sls-go"
)

// dirName is the per-user cache subdirectory holding state files.
const dirName = "wetwire-sls"

// State is the run-scoped state of one service.
type State struct {
	// ServicePath is the absolute service directory
	ServicePath string `json:"servicePath"`
	// PathAssets is the staged SDK directory, empty until the SDK was copied
	PathAssets string `json:"pathAssets,omitempty"`
	// Functions are the wrapper records keyed by function key
	Functions map[string]wetwire.WrapperRecord `json:"functions,omitempty"`
	// Written lists wrapper files written to disk, relative to ServicePath
	Written []string `json:"written,omitempty"`
}

// Empty reports whether the state records nothing to clean up.
func (s *State) Empty() bool {
	return s.PathAssets == "" && len(s.Written) == 0 && len(s.Functions) == 0
}

// DefaultPath returns the state file for serviceDir inside dir. When dir is empty the
// user cache directory is used.
func DefaultPath(dir, serviceDir string) (string, error) {
	abs, err := filepath.Abs(serviceDir)
	if err != nil {
		return "", fmt.Errorf("resolving service directory: %w", err)
	}

	if dir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("locating cache directory: %w", err)
		}
		dir = filepath.Join(cache, dirName)
	}

	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(dir, hex.EncodeToString(sum[:])[:16]+".json"), nil
}

// Load reads the state file. A missing file yields an empty state.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing state %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the state file, creating its directory.
func Save(path string, s *State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// Remove deletes the state file. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing state: %w", err)
	}
	return nil
}
