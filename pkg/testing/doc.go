// Package testing provides deterministic test support for pivot.
//
// # Animation Testing
//
// Install a FakeClock to control animation time:
//
//	func TestRotation(t *testing.T) {
//	    clk := pivottest.NewFakeClock()
//	    prev := animation.SetClock(clk)
//	    defer animation.SetClock(prev)
//
//	    clk.Advance(100 * time.Millisecond)
//	    // ...
//	}
//
// # Draw Assertions
//
// A Recorder captures canvas operations for order and value assertions:
//
//	rec := pivottest.NewRecorder(rendering.Size{Width: 100, Height: 100})
//	widget.Draw(rec)
//	if rec.OpNames()[0] != "save" {
//	    t.Error("expected scoped transform")
//	}
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import pivottest "github.com/go-pivot/pivot/pkg/testing"
package testing
