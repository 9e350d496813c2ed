package widgets_test

import (
	"image"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-pivot/pivot/pkg/animation"
	"github.com/go-pivot/pivot/pkg/errors"
	"github.com/go-pivot/pivot/pkg/rendering"
	pivottest "github.com/go-pivot/pivot/pkg/testing"
	"github.com/go-pivot/pivot/pkg/widgets"
)

func installFakeClock(t *testing.T) *pivottest.FakeClock {
	t.Helper()
	clk := pivottest.NewFakeClock()
	prev := animation.SetClock(clk)
	t.Cleanup(func() { animation.SetClock(prev) })
	return clk
}

func testImage(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestRotatedImage_DrawNoOpWithoutContent(t *testing.T) {
	installFakeClock(t)
	w := widgets.NewRotatedImage(widgets.Options{NaturalPortrait: true})
	rec := pivottest.NewRecorder(rendering.Size{Width: 100, Height: 100})

	w.Draw(rec)

	if len(rec.Ops()) != 0 {
		t.Errorf("expected no ops without content, got %v", rec.OpNames())
	}
}

func TestRotatedImage_DrawTransformOrder(t *testing.T) {
	installFakeClock(t)
	w := widgets.NewRotatedImage(widgets.Options{NaturalPortrait: true})
	w.SetViewport(rendering.Size{Width: 100, Height: 100}, rendering.EdgeInsets{})
	w.SetImage(testImage(40, 20))

	rec := pivottest.NewRecorder(rendering.Size{Width: 100, Height: 100})
	w.Draw(rec)

	want := []string{
		"save",
		"translate", "scale", "translate", // fit-center about the usable center
		"translate", "rotate", "translate",
		"drawImageRect",
		"restore",
	}
	if diff := cmp.Diff(want, rec.OpNames()); diff != "" {
		t.Errorf("op order mismatch (-want +got):\n%s", diff)
	}

	ops := rec.Ops()
	if diff := cmp.Diff(map[string]any{"dx": 50.0, "dy": 50.0}, ops[1].Params); diff != "" {
		t.Errorf("scale pivot mismatch (-want +got):\n%s", diff)
	}
	// Portrait classification at angle 0: ratio = min(100/40, 100/20).
	if diff := cmp.Diff(map[string]any{"sx": 2.5, "sy": 2.5}, ops[2].Params); diff != "" {
		t.Errorf("fit-center ratio mismatch (-want +got):\n%s", diff)
	}
}

func TestRotatedImage_RatioSwapsWhenLandscape(t *testing.T) {
	installFakeClock(t)
	scaleAt := func(degree int) float64 {
		w := widgets.NewRotatedImage(widgets.Options{NaturalPortrait: true})
		w.SetViewport(rendering.Size{Width: 100, Height: 60}, rendering.EdgeInsets{})
		w.SetImage(testImage(40, 20))
		w.SetOrientation(degree, false)

		rec := pivottest.NewRecorder(rendering.Size{Width: 100, Height: 60})
		w.Draw(rec)
		return rec.Ops()[2].Params["sx"].(float64)
	}

	// Portrait presentation: min(100/40, 60/20). Landscape swaps the axes:
	// min(60/40, 100/20).
	if got := scaleAt(0); got != 2.5 {
		t.Errorf("portrait ratio: expected 2.5, got %v", got)
	}
	if got := scaleAt(90); got != 1.5 {
		t.Errorf("landscape ratio: expected 1.5, got %v", got)
	}
}

func TestRotatedImage_ScaleModeNoneSkipsScaling(t *testing.T) {
	installFakeClock(t)
	w := widgets.NewRotatedImage(widgets.Options{NaturalPortrait: true})
	w.SetViewport(rendering.Size{Width: 100, Height: 100}, rendering.EdgeInsets{})
	w.SetScaleMode(widgets.ScaleModeNone)
	w.SetImage(testImage(40, 20))

	rec := pivottest.NewRecorder(rendering.Size{Width: 100, Height: 100})
	w.Draw(rec)

	want := []string{"save", "translate", "rotate", "translate", "drawImageRect", "restore"}
	if diff := cmp.Diff(want, rec.OpNames()); diff != "" {
		t.Errorf("op order mismatch (-want +got):\n%s", diff)
	}
}

func TestRotatedImage_PaddingShiftsUsableCenter(t *testing.T) {
	installFakeClock(t)
	w := widgets.NewRotatedImage(widgets.Options{NaturalPortrait: true})
	w.SetViewport(rendering.Size{Width: 100, Height: 100}, rendering.EdgeInsetsOnly(10, 20, 30, 40))
	w.SetScaleMode(widgets.ScaleModeNone)
	w.SetImage(testImage(40, 20))

	rec := pivottest.NewRecorder(rendering.Size{Width: 100, Height: 100})
	w.Draw(rec)

	// Usable area spans (10,20)-(70,60), so its center sits at (40,40).
	ops := rec.Ops()
	if diff := cmp.Diff(map[string]any{"dx": 40.0, "dy": 40.0}, ops[1].Params); diff != "" {
		t.Errorf("usable center mismatch (-want +got):\n%s", diff)
	}
}

func TestRotatedImage_RotatesNegativeCurrentAngle(t *testing.T) {
	installFakeClock(t)
	w := widgets.NewRotatedImage(widgets.Options{NaturalPortrait: true})
	w.SetScaleMode(widgets.ScaleModeNone)
	w.SetImage(testImage(40, 20))
	w.SetOrientation(90, false)

	rec := pivottest.NewRecorder(rendering.Size{Width: 100, Height: 100})
	w.Draw(rec)

	// 90 degrees counter-clockwise: -pi/2 radians.
	got := rec.Ops()[2].Params["radians"].(float64)
	if got != -1.57 {
		t.Errorf("expected rotation of -1.57 radians, got %v", got)
	}
}

func TestRotatedImage_AnimatedDrawRequestsRedraw(t *testing.T) {
	clk := installFakeClock(t)
	redraws := 0
	w := widgets.NewRotatedImage(widgets.Options{
		NaturalPortrait: true,
		RequestRedraw:   func() { redraws++ },
	})
	w.SetImage(testImage(40, 20))
	redraws = 0

	w.SetOrientation(90, true)
	if redraws != 1 {
		t.Fatalf("expected redraw on orientation change, got %d", redraws)
	}

	clk.Advance(100 * time.Millisecond)
	rec := pivottest.NewRecorder(rendering.Size{Width: 100, Height: 100})
	w.Draw(rec)
	if redraws != 2 {
		t.Errorf("expected mid-flight draw to request a frame, got %d redraws", redraws)
	}

	clk.Advance(300 * time.Millisecond) // past the 333ms schedule
	rec.Reset()
	w.Draw(rec)
	if redraws != 2 {
		t.Errorf("expected no frame request after completion, got %d redraws", redraws)
	}
}

func TestRotatedImage_RepeatedTargetIsNoOp(t *testing.T) {
	installFakeClock(t)
	redraws := 0
	w := widgets.NewRotatedImage(widgets.Options{
		NaturalPortrait: true,
		RequestRedraw:   func() { redraws++ },
	})

	w.SetOrientation(90, false)
	w.SetOrientation(90, true)
	w.SetOrientation(450, true)

	if redraws != 1 {
		t.Errorf("expected a single redraw for repeated targets, got %d", redraws)
	}
	if w.Target() != 90 {
		t.Errorf("expected target 90, got %d", w.Target())
	}
}

func TestRotatedImage_SetImageNilClearsAndHides(t *testing.T) {
	installFakeClock(t)
	w := widgets.NewRotatedImage(widgets.Options{NaturalPortrait: true})
	w.SetImage(testImage(40, 20))
	if !w.Visible() {
		t.Fatal("expected widget visible after content assignment")
	}

	w.SetImage(nil)

	if w.Visible() {
		t.Error("expected widget hidden after clearing content")
	}
	if w.Content() != nil {
		t.Error("expected content cleared")
	}
	rec := pivottest.NewRecorder(rendering.Size{Width: 100, Height: 100})
	w.Draw(rec)
	if len(rec.Ops()) != 0 {
		t.Errorf("expected no draw ops after clear, got %v", rec.OpNames())
	}
}

func TestRotatedImage_FirstImageDisplaysDirectly(t *testing.T) {
	installFakeClock(t)
	w := widgets.NewRotatedImage(widgets.Options{NaturalPortrait: true})

	w.SetImage(testImage(40, 20))

	if _, ok := w.Content().(*rendering.ImageDrawable); !ok {
		t.Errorf("expected direct bitmap content, got %T", w.Content())
	}
}

func TestRotatedImage_SecondImageCrossFades(t *testing.T) {
	clk := installFakeClock(t)
	w := widgets.NewRotatedImage(widgets.Options{NaturalPortrait: true})
	w.SetScaleMode(widgets.ScaleModeNone)
	w.SetImage(testImage(30, 10))

	w.SetImage(testImage(50, 20))

	fade, ok := w.Content().(*widgets.TransitionDrawable)
	if !ok {
		t.Fatalf("expected cross-fade content, got %T", w.Content())
	}
	if !fade.Running() {
		t.Fatal("expected cross-fade started immediately")
	}

	// At the start only the previous bitmap paints.
	rec := pivottest.NewRecorder(rendering.Size{Width: 100, Height: 100})
	w.Draw(rec)
	if got := countOps(rec, "drawImageRect"); got != 1 {
		t.Errorf("at fade start: expected 1 image draw, got %d: %v", got, rec.OpNames())
	}

	// Mid-fade the incoming bitmap joins inside an alpha layer.
	clk.Advance(250 * time.Millisecond)
	rec.Reset()
	w.Draw(rec)
	if got := countOps(rec, "drawImageRect"); got != 2 {
		t.Errorf("mid-fade: expected 2 image draws, got %d: %v", got, rec.OpNames())
	}
	alpha := findOp(t, rec, "saveLayerAlpha").Params["alpha"]
	if alpha != 0.5 {
		t.Errorf("mid-fade: expected alpha 0.5, got %v", alpha)
	}
	if saves, restores := countOps(rec, "save")+countOps(rec, "saveLayerAlpha"), countOps(rec, "restore"); saves != restores {
		t.Errorf("unbalanced save/restore: %d saves, %d restores", saves, restores)
	}

	// After the duration the incoming bitmap paints directly.
	clk.Advance(250 * time.Millisecond)
	rec.Reset()
	w.Draw(rec)
	if got := countOps(rec, "saveLayerAlpha"); got != 0 {
		t.Errorf("after fade: expected no alpha layer, got %v", rec.OpNames())
	}
	if got := countOps(rec, "drawImageRect"); got != 2 {
		t.Errorf("after fade: expected both layers drawn, got %d", got)
	}
	if fade.Running() {
		t.Error("expected fade finished")
	}
}

func TestRotatedImage_FadeReferencesPreviousAndNewThumbnails(t *testing.T) {
	clk := installFakeClock(t)
	w := widgets.NewRotatedImage(widgets.Options{NaturalPortrait: true})
	w.SetScaleMode(widgets.ScaleModeNone)
	w.SetImage(testImage(30, 10))
	w.SetImage(testImage(50, 20))

	clk.Advance(250 * time.Millisecond)
	rec := pivottest.NewRecorder(rendering.Size{Width: 100, Height: 100})
	w.Draw(rec)

	var dsts []map[string]any
	for _, op := range rec.Ops() {
		if op.Op == "drawImageRect" {
			dsts = append(dsts, op.Params["dst"].(map[string]any))
		}
	}
	want := []map[string]any{
		{"left": 0.0, "top": 0.0, "right": 30.0, "bottom": 10.0},
		{"left": 0.0, "top": 0.0, "right": 50.0, "bottom": 20.0},
	}
	if diff := cmp.Diff(want, dsts); diff != "" {
		t.Errorf("fade layers mismatch (-want +got):\n%s", diff)
	}
}

func TestRotatedImage_NoFadeWhenAnimationDisabled(t *testing.T) {
	installFakeClock(t)
	w := widgets.NewRotatedImage(widgets.Options{NaturalPortrait: true})
	w.SetImage(testImage(30, 10))

	w.SetOrientation(90, false) // disables animation for transitions too
	w.SetImage(testImage(50, 20))

	if _, ok := w.Content().(*rendering.ImageDrawable); !ok {
		t.Errorf("expected direct bitmap content without animation, got %T", w.Content())
	}
}

func TestRotatedImage_ThumbnailSizedToDeclaredArea(t *testing.T) {
	installFakeClock(t)
	var gotW, gotH int
	w := widgets.NewRotatedImage(widgets.Options{
		NaturalPortrait: true,
		Thumbnailer: func(src image.Image, width, height int) image.Image {
			gotW, gotH = width, height
			return image.NewRGBA(image.Rect(0, 0, width, height))
		},
	})
	w.SetViewport(rendering.Size{Width: 60, Height: 40}, rendering.EdgeInsetsAll(5))
	w.SetDeclaredSize(rendering.Size{Width: 60, Height: 40})

	w.SetImage(testImage(400, 300))

	if gotW != 50 || gotH != 30 {
		t.Errorf("expected 50x30 thumbnail request, got %dx%d", gotW, gotH)
	}
	b := w.Content().Bounds()
	if b.Width() != 50 || b.Height() != 30 {
		t.Errorf("expected content bounds 50x30, got %vx%v", b.Width(), b.Height())
	}
}

func TestRotatedImage_IntrinsicSizeWithoutDeclaredArea(t *testing.T) {
	installFakeClock(t)
	w := widgets.NewRotatedImage(widgets.Options{NaturalPortrait: true})

	w.SetImage(testImage(400, 300))

	b := w.Content().Bounds()
	if b.Width() != 400 || b.Height() != 300 {
		t.Errorf("expected intrinsic content bounds 400x300, got %vx%v", b.Width(), b.Height())
	}
}

func TestRotatedImage_NilThumbnailFallsBackToSource(t *testing.T) {
	installFakeClock(t)
	quietErrors(t)
	w := widgets.NewRotatedImage(widgets.Options{
		NaturalPortrait: true,
		Thumbnailer:     func(image.Image, int, int) image.Image { return nil },
	})
	w.SetDeclaredSize(rendering.Size{Width: 60, Height: 40})

	w.SetImage(testImage(400, 300))

	b := w.Content().Bounds()
	if b.Width() != 400 || b.Height() != 300 {
		t.Errorf("expected source bounds fallback, got %vx%v", b.Width(), b.Height())
	}
}

func TestRotatedImage_RedrawPanicIsContained(t *testing.T) {
	installFakeClock(t)
	quietErrors(t)
	w := widgets.NewRotatedImage(widgets.Options{
		NaturalPortrait: true,
		RequestRedraw:   func() { panic("host callback") },
	})

	w.SetImage(testImage(10, 10))

	if !w.Visible() {
		t.Error("expected widget visible after content assignment")
	}
}

func quietErrors(t *testing.T) {
	t.Helper()
	prev := errors.DefaultHandler
	errors.SetHandler(noopHandler{})
	t.Cleanup(func() { errors.SetHandler(prev) })
}

type noopHandler struct{}

func (noopHandler) HandleError(*errors.PivotError) {}
func (noopHandler) HandlePanic(*errors.PanicError) {}

func countOps(rec *pivottest.Recorder, name string) int {
	n := 0
	for _, op := range rec.Ops() {
		if op.Op == name {
			n++
		}
	}
	return n
}

func findOp(t *testing.T, rec *pivottest.Recorder, name string) pivottest.DisplayOp {
	t.Helper()
	for _, op := range rec.Ops() {
		if op.Op == name {
			return op
		}
	}
	t.Fatalf("expected a %q op, got %v", name, rec.OpNames())
	return pivottest.DisplayOp{}
}
