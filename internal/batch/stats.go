package batch

import "github.com/google/uuid"

// RunStats accumulates counters for one orchestrator invocation. It is owned
// exclusively by the orchestrator; translators report results, they never
// touch the stats directly.
type RunStats struct {
	RunID      string
	Translated int
	Skipped    int
	Failed     int

	outputPaths []string
	seen        map[string]struct{}
}

// NewRunStats creates empty stats tagged with a fresh run identifier.
func NewRunStats() *RunStats {
	return &RunStats{
		RunID: uuid.NewString(),
		seen:  map[string]struct{}{},
	}
}

// RecordOutput remembers a newly written path exactly once, in write order.
func (s *RunStats) RecordOutput(path string) {
	if path == "" {
		return
	}
	if _, ok := s.seen[path]; ok {
		return
	}
	s.seen[path] = struct{}{}
	s.outputPaths = append(s.outputPaths, path)
}

// OutputPaths returns the ordered, deduplicated set of paths written this run.
func (s *RunStats) OutputPaths() []string {
	return s.outputPaths
}

// Merge folds another run's counters and outputs into this one. Used when a
// single CLI invocation runs both the story and character batches.
func (s *RunStats) Merge(other *RunStats) {
	if other == nil {
		return
	}
	s.Translated += other.Translated
	s.Skipped += other.Skipped
	s.Failed += other.Failed
	for _, path := range other.outputPaths {
		s.RecordOutput(path)
	}
}
