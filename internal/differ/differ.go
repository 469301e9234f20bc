// Package differ compares CloudFormation templates resource by resource.
//
// It is used to report what the injectors added to a compiled template and to compare
// a template before and after a deploy hook ran.
package differ

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	wetwire "github.com/lex00/wetwire-sls-go"
	"github.com/lex00/wetwire-sls-go/internal/template"
)

// Options configures the differ.
type Options struct {
	// IgnoreOrder ignores array element order in comparisons
	IgnoreOrder bool
}

// Result contains the difference between two templates.
type Result struct {
	Diff    wetwire.TemplateDiff
	Summary wetwire.DiffSummary
	// Outputs lists outputs that were added, removed or changed
	Outputs []string
}

// Compare compares two templates. Both are normalized first, so intrinsic values compare
// equal to their decoded map form.
func Compare(before, after *wetwire.Template, opts Options) (*Result, error) {
	t1, err := template.Clone(before)
	if err != nil {
		return nil, fmt.Errorf("normalizing template: %w", err)
	}
	t2, err := template.Clone(after)
	if err != nil {
		return nil, fmt.Errorf("normalizing template: %w", err)
	}

	result := &Result{}

	for name, def := range t2.Resources {
		if _, exists := t1.Resources[name]; !exists {
			result.Diff.Added = append(result.Diff.Added, wetwire.DiffEntry{Resource: name, Type: def.Type})
		}
	}

	for name, def := range t1.Resources {
		def2, exists := t2.Resources[name]
		if !exists {
			result.Diff.Removed = append(result.Diff.Removed, wetwire.DiffEntry{Resource: name, Type: def.Type})
			continue
		}
		if changes := compareResources(def, def2, opts); len(changes) > 0 {
			result.Diff.Modified = append(result.Diff.Modified, wetwire.DiffEntry{
				Resource: name,
				Type:     def.Type,
				Changes:  changes,
			})
		}
	}

	sortEntries(result.Diff.Added)
	sortEntries(result.Diff.Removed)
	sortEntries(result.Diff.Modified)

	result.Outputs = compareOutputs(t1.Outputs, t2.Outputs, opts)

	result.Summary = wetwire.DiffSummary{
		Added:    len(result.Diff.Added),
		Removed:  len(result.Diff.Removed),
		Modified: len(result.Diff.Modified),
	}
	result.Summary.Total = result.Summary.Added + result.Summary.Removed + result.Summary.Modified

	return result, nil
}

// CompareFiles compares two template files.
func CompareFiles(file1, file2 string, opts Options) (*Result, error) {
	t1, err := template.Load(file1)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file1, err)
	}

	t2, err := template.Load(file2)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file2, err)
	}

	return Compare(t1, t2, opts)
}

// compareResources compares two resource definitions and returns changes.
func compareResources(def1, def2 wetwire.ResourceDef, opts Options) []string {
	var changes []string

	if def1.Type != def2.Type {
		changes = append(changes, fmt.Sprintf("Type changed: %s → %s", def1.Type, def2.Type))
	}

	changes = append(changes, compareProperties("", def1.Properties, def2.Properties, opts)...)

	if !deepEqual(def1.DependsOn, def2.DependsOn, opts) {
		changes = append(changes, "DependsOn changed")
	}
	if def1.Condition != def2.Condition {
		changes = append(changes, "Condition changed")
	}
	if def1.DeletionPolicy != def2.DeletionPolicy {
		changes = append(changes, "DeletionPolicy changed")
	}

	return changes
}

// compareProperties compares property maps one level deep.
func compareProperties(prefix string, props1, props2 map[string]any, opts Options) []string {
	var changes []string

	for key, val2 := range props2 {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if val1, exists := props1[key]; exists {
			if !deepEqual(val1, val2, opts) {
				changes = append(changes, fmt.Sprintf("%s modified", path))
			}
		} else {
			changes = append(changes, fmt.Sprintf("%s added", path))
		}
	}

	for key := range props1 {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if _, exists := props2[key]; !exists {
			changes = append(changes, fmt.Sprintf("%s removed", path))
		}
	}

	sort.Strings(changes)
	return changes
}

// compareOutputs returns the sorted names of outputs that differ.
func compareOutputs(out1, out2 map[string]wetwire.Output, opts Options) []string {
	var names []string
	for name, o2 := range out2 {
		o1, exists := out1[name]
		if !exists || !deepEqual(o1.Value, o2.Value, opts) {
			names = append(names, name)
		}
	}
	for name := range out1 {
		if _, exists := out2[name]; !exists {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// deepEqual compares two values deeply, optionally ignoring array order.
func deepEqual(a, b any, opts Options) bool {
	if opts.IgnoreOrder {
		a = normalizeValue(a)
		b = normalizeValue(b)
	}
	return reflect.DeepEqual(a, b)
}

// normalizeValue sorts arrays by their JSON encoding, recursively.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []any:
		result := make([]any, len(val))
		keys := make([]string, len(val))
		for i, item := range val {
			result[i] = normalizeValue(item)
		}
		for i, item := range result {
			data, _ := json.Marshal(item)
			keys[i] = string(data)
		}
		sort.Sort(byKey{items: result, keys: keys})
		return result
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[k] = normalizeValue(v)
		}
		return result
	default:
		return v
	}
}

type byKey struct {
	items []any
	keys  []string
}

func (s byKey) Len() int           { return len(s.items) }
func (s byKey) Less(i, j int) bool { return s.keys[i] < s.keys[j] }
func (s byKey) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
}

// sortEntries sorts diff entries by resource name.
func sortEntries(entries []wetwire.DiffEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Resource < entries[j].Resource
	})
}
