// Package testing provides a test harness for components rendered by core.Root.
//
// # Quick Start
//
// Create a tester, mount an element, and make assertions against the
// in-memory host tree:
//
//	func TestCounter(t *testing.T) {
//	    tester := fibertest.NewTesterWithT(t)
//	    tester.Mount(core.El(Counter, nil))
//
//	    tester.Tap(fibertest.ByTag("button"))
//	    tester.PumpAll()
//
//	    if !tester.Find(fibertest.ByText("1")).Exists() {
//	        t.Error("expected count 1")
//	    }
//	}
//
// # Time Slicing
//
// The tester's scheduler only runs work when pumped. PumpUnits runs one slice
// that yields after a fixed number of fibers, which makes yield and resume
// points deterministic:
//
//	tester.Render(app)
//	for tester.PumpUnits(3) {
//	}
//
// # Snapshot Testing
//
// Capture and compare host tree snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/app.snapshot.json")
//
// Update snapshots with:
//
//	FIBER_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import fibertest "github.com/go-drift/fiber/pkg/testing"
package testing
