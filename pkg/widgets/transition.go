package widgets

import (
	"math"
	"time"

	"github.com/go-pivot/pivot/pkg/animation"
	"github.com/go-pivot/pivot/pkg/rendering"
)

// DefaultFadeDuration is the length of the content cross-fade.
const DefaultFadeDuration = 500 * time.Millisecond

// TransitionDrawable cross-fades from one drawable to its replacement.
// The previous drawable paints at full opacity with the replacement
// layered on top, ramping linearly from transparent to opaque over the
// transition duration. Before Start is called only the previous drawable
// is visible.
type TransitionDrawable struct {
	prev, next rendering.Drawable

	startTime time.Time
	duration  time.Duration
	started   bool
}

// NewTransitionDrawable pairs the outgoing and incoming drawables.
// Either may be nil; a nil layer simply paints nothing.
func NewTransitionDrawable(prev, next rendering.Drawable) *TransitionDrawable {
	return &TransitionDrawable{prev: prev, next: next}
}

// Start begins the fade at the animation clock's current reading.
func (t *TransitionDrawable) Start(duration time.Duration) {
	t.startTime = animation.Now()
	t.duration = duration
	t.started = true
}

// Running reports whether the fade still needs frames.
func (t *TransitionDrawable) Running() bool {
	return t.started && t.progress() < 1
}

// Bounds returns the union of both layers' bounds.
func (t *TransitionDrawable) Bounds() rendering.Rect {
	var w, h float64
	if t.prev != nil {
		b := t.prev.Bounds()
		w, h = b.Width(), b.Height()
	}
	if t.next != nil {
		b := t.next.Bounds()
		w = math.Max(w, b.Width())
		h = math.Max(h, b.Height())
	}
	return rendering.RectFromLTWH(0, 0, w, h)
}

// Draw paints the previous layer, then the incoming layer at the current
// fade opacity.
func (t *TransitionDrawable) Draw(canvas rendering.Canvas) {
	if t.prev != nil {
		t.prev.Draw(canvas)
	}
	if t.next == nil {
		return
	}
	alpha := t.progress()
	if alpha <= 0 {
		return
	}
	if alpha >= 1 {
		t.next.Draw(canvas)
		return
	}
	canvas.SaveLayerAlpha(t.next.Bounds(), alpha)
	t.next.Draw(canvas)
	canvas.Restore()
}

// progress returns the fade position in [0, 1].
func (t *TransitionDrawable) progress() float64 {
	if !t.started {
		return 0
	}
	if t.duration <= 0 {
		return 1
	}
	elapsed := animation.Now().Sub(t.startTime)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= t.duration {
		return 1
	}
	return float64(elapsed) / float64(t.duration)
}
