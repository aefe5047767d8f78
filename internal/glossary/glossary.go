// Package glossary loads the static Japanese-to-English term dictionary that
// gets embedded into every translation prompt. The glossary is read once at
// startup and never mutated afterwards.
package glossary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Glossary is an immutable source-term to target-term dictionary.
type Glossary struct {
	terms      map[string]string
	serialized string
}

// Load reads the glossary JSON object from path. A missing path yields an
// empty glossary; a present but unparsable file is an error.
func Load(path string) (*Glossary, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return &Glossary{terms: map[string]string{}, serialized: "{}"}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Glossary{terms: map[string]string{}, serialized: "{}"}, nil
		}
		return nil, fmt.Errorf("read glossary %s: %w", path, err)
	}

	terms := map[string]string{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &terms); err != nil {
			return nil, fmt.Errorf("parse glossary %s: %w", path, err)
		}
	}

	// Map keys marshal in sorted order, so the serialized form is stable
	// across runs regardless of file formatting.
	serialized, err := json.Marshal(terms)
	if err != nil {
		return nil, fmt.Errorf("serialize glossary: %w", err)
	}

	return &Glossary{terms: terms, serialized: string(serialized)}, nil
}

// Len returns the number of glossary terms.
func (g *Glossary) Len() int {
	if g == nil {
		return 0
	}
	return len(g.terms)
}

// Serialized returns the canonical JSON form injected into system prompts.
func (g *Glossary) Serialized() string {
	if g == nil || g.serialized == "" {
		return "{}"
	}
	return g.serialized
}

// Lookup returns the target term for an exact source term, if present.
func (g *Glossary) Lookup(source string) (string, bool) {
	if g == nil {
		return "", false
	}
	target, ok := g.terms[source]
	return target, ok
}
