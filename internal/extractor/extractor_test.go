package extractor

import (
	"context"
	"errors"
	"testing"

	"umatl/internal/services"
)

type stubExecutor struct {
	binary string
	args   []string
	lines  []string
	err    error
}

func (s *stubExecutor) Run(_ context.Context, binary string, args []string, onStdout func(string)) error {
	s.binary = binary
	s.args = args
	for _, line := range s.lines {
		onStdout(line)
	}
	return s.err
}

func TestExtractBuildsArguments(t *testing.T) {
	exec := &stubExecutor{lines: []string{"unpacking story_01", ""}}
	client, err := New("umaextract", 30, nil, WithExecutor(exec))
	if err != nil {
		t.Fatal(err)
	}

	err = client.Extract(context.Background(), Request{
		AssetType: "story",
		StoryID:   "04_1026",
		DestDir:   "/tmp/raw",
		Overwrite: true,
	})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if exec.binary != "umaextract" {
		t.Fatalf("unexpected binary %q", exec.binary)
	}
	want := []string{"--output", "/tmp/raw", "--type", "story", "--story-id", "04_1026", "--overwrite"}
	if len(exec.args) != len(want) {
		t.Fatalf("unexpected args %v", exec.args)
	}
	for i := range want {
		if exec.args[i] != want[i] {
			t.Fatalf("arg %d: got %q want %q", i, exec.args[i], want[i])
		}
	}
}

func TestExtractExecutorFailure(t *testing.T) {
	client, err := New("umaextract", 1, nil, WithExecutor(&stubExecutor{err: errors.New("exit status 2")}))
	if err != nil {
		t.Fatal(err)
	}
	err = client.Extract(context.Background(), Request{DestDir: "/tmp/raw"})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestExtractRequiresDestination(t *testing.T) {
	client, err := New("umaextract", 1, nil, WithExecutor(&stubExecutor{}))
	if err != nil {
		t.Fatal(err)
	}
	if err := client.Extract(context.Background(), Request{}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := New("  ", 1, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
