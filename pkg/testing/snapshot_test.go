package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/fiber/pkg/core"
)

func TestCaptureSnapshot_Structure(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(core.El(counter, nil))

	snap := tester.CaptureSnapshot()
	if snap.Tag != "root" || len(snap.Children) != 1 {
		t.Fatalf("expected root with one child, got %+v", snap)
	}
	div := snap.Children[0]
	if div.Attrs["class"] != "counter" || len(div.Children) != 3 {
		t.Fatalf("unexpected counter snapshot %+v", div)
	}
	button := div.Children[1]
	if len(button.Events) != 1 || button.Events[0] != "click" {
		t.Errorf("expected click event, got %v", button.Events)
	}
	if text := div.Children[0].Children[0]; text.Text != "0" || text.Attrs != nil {
		t.Errorf("unexpected text snapshot %+v", text)
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(card("a", "b"))

	a := tester.CaptureSnapshot()
	b := tester.CaptureSnapshot()

	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	tester := NewTesterWithT(t)

	tester.Mount(card("a", "b"))
	a := tester.CaptureSnapshot()

	tester.Mount(card("a", "c"))
	b := tester.CaptureSnapshot()

	if diff := a.Diff(b); diff == "" {
		t.Error("expected diff for different snapshots")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(card("Title", "body"))

	snap := tester.CaptureSnapshot()
	path := filepath.Join(t.TempDir(), "snapshots", "card.json")

	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected snapshot file: %v", err)
	}
	snap.MatchesFile(t, path)
}

type recordingT struct {
	name   string
	fatals []string
	errors []string
}

func (r *recordingT) Helper() {}
func (r *recordingT) Name() string { return r.name }
func (r *recordingT) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, format)
}
func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, format)
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(card("Title", "one"))
	path := filepath.Join(t.TempDir(), "card.json")
	if err := tester.CaptureSnapshot().UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	tester.Mount(card("Title", "two"))
	rt := &recordingT{name: "TestMismatch"}
	tester.CaptureSnapshot().MatchesFile(rt, path)

	if len(rt.errors) != 1 || len(rt.fatals) != 0 {
		t.Errorf("expected one mismatch error, got errors=%v fatals=%v", rt.errors, rt.fatals)
	}
}

func TestSnapshot_MatchesFile_Missing(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(card("Title"))

	rt := &recordingT{name: "TestMissing"}
	tester.CaptureSnapshot().MatchesFile(rt, filepath.Join(t.TempDir(), "nope.json"))

	if len(rt.fatals) != 1 {
		t.Errorf("expected a fatal for the missing file, got %v", rt.fatals)
	}
}

func TestSnapshot_MatchesFile_UpdateEnv(t *testing.T) {
	t.Setenv("FIBER_UPDATE_SNAPSHOTS", "1")
	tester := NewTesterWithT(t)
	tester.Mount(card("Title"))
	path := filepath.Join(t.TempDir(), "new.json")

	tester.CaptureSnapshot().MatchesFile(t, path)

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected the snapshot to be written: %v", err)
	}
}
