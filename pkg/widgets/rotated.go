package widgets

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/go-pivot/pivot/pkg/animation"
	"github.com/go-pivot/pivot/pkg/errors"
	"github.com/go-pivot/pivot/pkg/imaging"
	"github.com/go-pivot/pivot/pkg/rendering"
)

// Rotatable is the capability of pointing a widget at a rotation angle.
type Rotatable interface {
	SetOrientation(degree int, animate bool)
}

// ScaleMode selects how content is scaled within the viewport.
type ScaleMode int

const (
	// ScaleModeFitCenter uniformly scales content to fit the usable
	// viewport, centered. This is the zero value and the default.
	ScaleModeFitCenter ScaleMode = iota
	// ScaleModeNone draws content at its intrinsic size.
	ScaleModeNone
)

// Thumbnailer produces a thumbnail of the requested dimensions from a
// source image.
type Thumbnailer func(src image.Image, width, height int) image.Image

// Options configure a RotatedImage.
type Options struct {
	// NaturalPortrait reports whether the host device's default orientation
	// is portrait. Fixed for the widget's lifetime; it selects the axis
	// comparison for fit-center scaling.
	NaturalPortrait bool

	// RequestRedraw is invoked whenever the widget needs another frame.
	// Calls are fire-and-forget and may be coalesced by the host. May be
	// nil.
	RequestRedraw func()

	// RotationSpeed overrides the angular velocity in degrees per second.
	// Zero means the default 270.
	RotationSpeed int

	// FadeDuration overrides the content cross-fade length. Zero means the
	// default 500ms.
	FadeDuration time.Duration

	// Thumbnailer overrides thumbnail extraction for SetImage. Nil means
	// imaging.ExtractThumbnail.
	Thumbnailer Thumbnailer
}

// RotatedImage displays a bitmap rotated to an orientation angle, animating
// orientation changes along the shortest angular path and cross-fading
// between successive bitmaps.
//
// The widget is passive: the host pushes layout facts through the setters,
// calls Draw from its paint cycle, and schedules repaints whenever the
// RequestRedraw callback fires. All methods must be called from the host's
// UI thread.
type RotatedImage struct {
	controller *animation.OrientationController
	redraw     func()
	thumbnail  Thumbnailer
	fade       time.Duration

	viewport  rendering.Size
	padding   rendering.EdgeInsets
	declared  rendering.Size
	scaleMode ScaleMode

	content    rendering.Drawable
	thumbs     []rendering.Drawable
	transition *TransitionDrawable
	visible    bool
}

// NewRotatedImage constructs a widget with no content at angle zero.
func NewRotatedImage(opts Options) *RotatedImage {
	controller := animation.NewOrientationController(opts.NaturalPortrait)
	if opts.RotationSpeed > 0 {
		controller.Speed = opts.RotationSpeed
	}
	fade := opts.FadeDuration
	if fade <= 0 {
		fade = DefaultFadeDuration
	}
	thumbnail := opts.Thumbnailer
	if thumbnail == nil {
		thumbnail = imaging.ExtractThumbnail
	}
	return &RotatedImage{
		controller: controller,
		redraw:     opts.RequestRedraw,
		thumbnail:  thumbnail,
		fade:       fade,
		visible:    true,
	}
}

// SetViewport records the widget's on-screen size and padding insets.
// A zero viewport falls back to the canvas size at draw time.
func (w *RotatedImage) SetViewport(size rendering.Size, padding rendering.EdgeInsets) {
	w.viewport = size
	w.padding = padding
}

// SetDeclaredSize records the layout-declared dimensions used to size
// content thumbnails. A zero size keeps bitmaps at their intrinsic size.
func (w *RotatedImage) SetDeclaredSize(size rendering.Size) {
	w.declared = size
}

// SetScaleMode selects the viewport scaling behavior.
func (w *RotatedImage) SetScaleMode(mode ScaleMode) {
	w.scaleMode = mode
}

// SetOrientation rotates the widget to the given angle in degrees,
// counter-clockwise positive. Any integer is accepted and normalized into
// [0, 359]. When animate is true the widget turns at constant speed along
// the shortest angular path; otherwise it snaps. Requesting the current
// target again is a no-op.
func (w *RotatedImage) SetOrientation(degree int, animate bool) {
	if w.controller.SetOrientation(degree, animate) {
		w.requestRedraw()
	}
}

// SetImage replaces the widget content. A nil image clears the content and
// hides the widget. Otherwise the image is reduced to a thumbnail sized to
// the declared content area, and, when a previous bitmap is present and
// animation is enabled, displayed through a cross-fade from the previous
// content.
func (w *RotatedImage) SetImage(img image.Image) {
	if img == nil {
		w.content = nil
		w.thumbs = nil
		w.transition = nil
		w.visible = false
		w.requestRedraw()
		return
	}

	thumbW := int(w.declared.Width - w.padding.Horizontal())
	thumbH := int(w.declared.Height - w.padding.Vertical())
	thumb := img
	if thumbW > 0 && thumbH > 0 {
		thumb = w.thumbnail(img, thumbW, thumbH)
		if thumb == nil {
			errors.Report(&errors.PivotError{
				Op:   "widgets.RotatedImage.SetImage",
				Kind: errors.KindImage,
				Err:  fmt.Errorf("thumbnailer returned no image for %dx%d", thumbW, thumbH),
			})
			thumb = img
		}
	}

	if w.thumbs == nil || !w.controller.AnimationEnabled() {
		w.thumbs = make([]rendering.Drawable, 2)
		w.thumbs[1] = rendering.NewImageDrawable(thumb)
		w.content = w.thumbs[1]
		w.transition = nil
	} else {
		w.thumbs[0] = w.thumbs[1]
		w.thumbs[1] = rendering.NewImageDrawable(thumb)
		w.transition = NewTransitionDrawable(w.thumbs[0], w.thumbs[1])
		w.content = w.transition
		w.transition.Start(w.fade)
	}
	w.visible = true
	w.requestRedraw()
}

// Draw paints the content rotated to the current angle. The transform is
// scoped: canvas state is saved up front and restored on every exit path.
// While a rotation or cross-fade is in flight, Draw requests a follow-up
// frame through the redraw callback.
func (w *RotatedImage) Draw(canvas rendering.Canvas) {
	if w.content == nil {
		return
	}
	bounds := w.content.Bounds()
	contentW := bounds.Width()
	contentH := bounds.Height()
	if contentW <= 0 || contentH <= 0 {
		return
	}

	if w.controller.Step() {
		w.requestRedraw()
	}

	viewport := w.viewport
	if viewport.IsEmpty() {
		viewport = canvas.Size()
	}
	usable := w.padding.Deflate(rendering.Rect{Right: viewport.Width, Bottom: viewport.Height})
	centerX := usable.Left + usable.Width()/2
	centerY := usable.Top + usable.Height()/2

	canvas.Save()
	defer canvas.Restore()

	if w.scaleMode == ScaleModeFitCenter {
		var ratio float64
		// The host layout is fixed to one orientation while the content
		// rotates, so the axis comparison swaps for landscape.
		if w.controller.IsPortrait() {
			ratio = math.Min(usable.Width()/contentW, usable.Height()/contentH)
		} else {
			ratio = math.Min(usable.Height()/contentW, usable.Width()/contentH)
		}
		canvas.Translate(centerX, centerY)
		canvas.Scale(ratio, ratio)
		canvas.Translate(-centerX, -centerY)
	}

	canvas.Translate(centerX, centerY)
	canvas.Rotate(-float64(w.controller.Current()) * math.Pi / 180)
	canvas.Translate(-contentW/2, -contentH/2)
	w.content.Draw(canvas)

	if w.transition != nil && w.transition.Running() {
		w.requestRedraw()
	}
}

// Target returns the orientation angle the widget is rotating toward,
// in [0, 359].
func (w *RotatedImage) Target() int {
	return w.controller.Target()
}

// Visible reports whether the widget should be laid out and painted.
// It is false after the content is cleared with SetImage(nil).
func (w *RotatedImage) Visible() bool {
	return w.visible
}

// Content returns the drawable currently displayed: nil, a bitmap, or an
// in-flight cross-fade.
func (w *RotatedImage) Content() rendering.Drawable {
	return w.content
}

func (w *RotatedImage) requestRedraw() {
	if w.redraw == nil {
		return
	}
	defer errors.Recover("widgets.RotatedImage.RequestRedraw")
	w.redraw()
}
