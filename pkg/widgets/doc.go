// Package widgets provides the orientation-animated image widget.
//
// RotatedImage displays a bitmap rotated to a target orientation. Changing
// the orientation with SetOrientation animates the angle along the shortest
// angular path at constant speed; replacing the content with SetImage
// cross-fades from the previous bitmap.
//
// The widget has no layout or event machinery of its own. The host supplies
// layout facts (viewport, padding, declared size) through setters, paints by
// calling Draw with any rendering.Canvas, and schedules repaints whenever
// the RequestRedraw callback fires:
//
//	w := widgets.NewRotatedImage(widgets.Options{
//	    NaturalPortrait: true,
//	    RequestRedraw:   view.Invalidate,
//	})
//	w.SetImage(photo)
//	w.SetOrientation(90, true)
//
//	// in the host's paint cycle:
//	w.Draw(canvas)
//
// Animation time comes from the animation package clock, replaceable in
// tests.
package widgets
