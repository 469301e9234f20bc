package wrap

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/lex00/wetwire-sls-go/internal/state"
)

// Clean removes the staged SDK and every wrapper written to disk for the run described
// by st. Paths that no longer exist are skipped, so calling it twice is harmless. It
// returns the paths it removed.
func Clean(st *state.State, log logrus.FieldLogger) ([]string, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	var targets []string
	if st.PathAssets != "" {
		targets = append(targets, st.PathAssets)
	}

	seen := make(map[string]bool)
	add := func(name string) {
		path := filepath.Join(st.ServicePath, name)
		if !seen[path] {
			seen[path] = true
			targets = append(targets, path)
		}
	}
	for _, name := range st.Written {
		add(name)
	}
	for _, key := range slices.Sorted(maps.Keys(st.Functions)) {
		add(st.Functions[key].FileName())
	}

	var removed []string
	for _, path := range targets {
		if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return removed, fmt.Errorf("removing %s: %w", path, err)
		}
		log.WithField("path", path).Debug("removed")
		removed = append(removed, path)
	}
	return removed, nil
}

// State returns the run state that lets Clean undo this result.
func (r *Result) State(serviceDir string) (*state.State, error) {
	abs, err := filepath.Abs(serviceDir)
	if err != nil {
		return nil, err
	}
	assets := r.AssetsDir
	if assets != "" {
		if assets, err = filepath.Abs(assets); err != nil {
			return nil, err
		}
	}
	return &state.State{
		ServicePath: abs,
		PathAssets:  assets,
		Functions:   r.Records,
		Written:     r.Written,
	}, nil
}
