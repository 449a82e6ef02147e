package testing

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/fiber/pkg/host"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot is a host tree without node identities, so trees produced by
// different renders can be compared.
type Snapshot struct {
	Tag      string            `json:"tag"`
	Text     string            `json:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Events   []string          `json:"events,omitempty"`
	Children []*Snapshot       `json:"children,omitempty"`
}

// CaptureSnapshot captures the host tree under the container.
func (t *Tester) CaptureSnapshot() *Snapshot {
	return Capture(t.container)
}

// Capture snapshots the subtree under n.
func Capture(n *host.Node) *Snapshot {
	s := &Snapshot{Tag: n.Tag}
	if n.IsText() {
		s.Text = n.Text()
		return s
	}
	for key, value := range n.Attrs {
		if s.Attrs == nil {
			s.Attrs = make(map[string]string, len(n.Attrs))
		}
		s.Attrs[key] = fmt.Sprint(value)
	}
	s.Events = slices.Sorted(maps.Keys(n.Listeners))
	for _, c := range n.Children {
		s.Children = append(s.Children, Capture(c))
	}
	return s
}

// Diff returns a human-readable diff from other to s, or "" if they are equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	return cmp.Diff(other, s)
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When FIBER_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("FIBER_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: FIBER_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}
	var expected Snapshot
	if err := json.Unmarshal(data, &expected); err != nil {
		t.Fatalf("failed to parse snapshot %s: %v", path, err)
		return
	}

	if diff := s.Diff(&expected); diff != "" {
		t.Errorf("snapshot mismatch: %s (-want +got)\n%s\nTo update: FIBER_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
