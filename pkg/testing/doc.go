// Package testing provides a harness for exercising widget trees without a
// native window.
//
// # Quick Start
//
// Create a tester, build widgets on its screen, and drive input:
//
//	func TestApply(t *testing.T) {
//	    tester := trellistest.NewScreenTesterWithT(t)
//	    win := window.New(tester.Screen(), "Settings")
//	    win.SetLayout(layout.NewGroupLayout())
//	    applied := false
//	    widgets.NewButton(win, "Apply").SetCallback(func() { applied = true })
//	    tester.Pump()
//
//	    tester.Tap(trellistest.ByCaption("Apply"))
//	    if !applied {
//	        t.Error("expected Apply callback")
//	    }
//	}
//
// Every gesture goes through the screen's host callbacks, so focus, drag
// and modal rules apply exactly as they do for a real host.
//
// # Snapshot Testing
//
// Capture and compare the widget tree and the recorded frame:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/settings.snapshot.json")
//
// Update snapshots with:
//
//	TRELLIS_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Time
//
// Tooltips depend on the screen's clock. The tester installs a FakeClock:
//
//	tester.Clock().Advance(time.Second)
//	tester.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import trellistest "github.com/go-drift/trellis/pkg/testing"
package testing
