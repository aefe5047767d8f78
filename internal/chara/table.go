package chara

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sort"

	"umatl/internal/services"
)

// Table is the character system-text mapping: character id to message id to text.
type Table map[string]map[string]string

// LoadTable reads and validates a character text table.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "chara", "load", path, err)
	}
	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, services.Wrap(services.ErrMalformedInput, "chara", "load", path, err)
	}
	if table == nil {
		return nil, services.Wrap(services.ErrMalformedInput, "chara", "load", path+": not an object", nil)
	}
	return table, nil
}

// LoadReference reads an optional prior-run snapshot used as a skip oracle.
// An empty path, a missing file, or an empty table all disable referencing and
// return nil.
func LoadReference(path string) (Table, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrIO, "chara", "load reference", path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, services.Wrap(services.ErrMalformedInput, "chara", "load reference", path, err)
	}
	if len(table) == 0 {
		return nil, nil
	}
	return table, nil
}

// Lookup returns the reference value for (charaID, messageID) when present and
// non-empty. JSON nulls decode to "" and count as absent.
func (t Table) Lookup(charaID, messageID string) (string, bool) {
	if t == nil {
		return "", false
	}
	messages, ok := t[charaID]
	if !ok {
		return "", false
	}
	value, ok := messages[messageID]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// sortedKeys returns map keys in sorted order for reproducible iteration logs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
