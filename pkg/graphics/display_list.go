package graphics

import (
	"image"

	"github.com/go-pivot/pivot/pkg/rendering"
)

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []displayOp
	size rendering.Size
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas rendering.Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() rendering.Size {
	return d.size
}

// Len returns the number of recorded operations.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// PictureRecorder records drawing commands into a display list.
type PictureRecorder struct {
	ops       []displayOp
	recording bool
	size      rendering.Size
}

// BeginRecording starts a new recording session.
func (r *PictureRecorder) BeginRecording(size rendering.Size) rendering.Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r, size: size}
}

// EndRecording finishes the recording and returns a display list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]displayOp, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{
		ops:  ops,
		size: r.size,
	}
}

func (r *PictureRecorder) append(op displayOp) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

type displayOp interface {
	execute(canvas rendering.Canvas)
}

type recordingCanvas struct {
	recorder *PictureRecorder
	size     rendering.Size
}

func (c *recordingCanvas) Save() {
	c.recorder.append(opSave{})
}

func (c *recordingCanvas) SaveLayerAlpha(bounds rendering.Rect, alpha float64) {
	c.recorder.append(opSaveLayerAlpha{bounds: bounds, alpha: alpha})
}

func (c *recordingCanvas) Restore() {
	c.recorder.append(opRestore{})
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.recorder.append(opTranslate{dx: dx, dy: dy})
}

func (c *recordingCanvas) Scale(sx, sy float64) {
	c.recorder.append(opScale{sx: sx, sy: sy})
}

func (c *recordingCanvas) Rotate(radians float64) {
	c.recorder.append(opRotate{radians: radians})
}

func (c *recordingCanvas) ClipRect(rect rendering.Rect) {
	c.recorder.append(opClipRect{rect: rect})
}

func (c *recordingCanvas) Clear(color rendering.Color) {
	c.recorder.append(opClear{color: color})
}

func (c *recordingCanvas) DrawRect(rect rendering.Rect, paint rendering.Paint) {
	c.recorder.append(opRect{rect: rect, paint: paint})
}

func (c *recordingCanvas) DrawImage(image image.Image, position rendering.Offset) {
	c.recorder.append(opImage{image: image, position: position})
}

func (c *recordingCanvas) DrawImageRect(img image.Image, srcRect, dstRect rendering.Rect, quality rendering.FilterQuality) {
	c.recorder.append(opImageRect{image: img, src: srcRect, dst: dstRect, quality: quality})
}

func (c *recordingCanvas) Size() rendering.Size {
	return c.size
}

type opSave struct{}

func (opSave) execute(canvas rendering.Canvas) {
	canvas.Save()
}

type opSaveLayerAlpha struct {
	bounds rendering.Rect
	alpha  float64
}

func (op opSaveLayerAlpha) execute(canvas rendering.Canvas) {
	canvas.SaveLayerAlpha(op.bounds, op.alpha)
}

type opRestore struct{}

func (opRestore) execute(canvas rendering.Canvas) {
	canvas.Restore()
}

type opTranslate struct {
	dx, dy float64
}

func (op opTranslate) execute(canvas rendering.Canvas) {
	canvas.Translate(op.dx, op.dy)
}

type opScale struct {
	sx, sy float64
}

func (op opScale) execute(canvas rendering.Canvas) {
	canvas.Scale(op.sx, op.sy)
}

type opRotate struct {
	radians float64
}

func (op opRotate) execute(canvas rendering.Canvas) {
	canvas.Rotate(op.radians)
}

type opClipRect struct {
	rect rendering.Rect
}

func (op opClipRect) execute(canvas rendering.Canvas) {
	canvas.ClipRect(op.rect)
}

type opClear struct {
	color rendering.Color
}

func (op opClear) execute(canvas rendering.Canvas) {
	canvas.Clear(op.color)
}

type opRect struct {
	rect  rendering.Rect
	paint rendering.Paint
}

func (op opRect) execute(canvas rendering.Canvas) {
	canvas.DrawRect(op.rect, op.paint)
}

type opImage struct {
	image    image.Image
	position rendering.Offset
}

func (op opImage) execute(canvas rendering.Canvas) {
	canvas.DrawImage(op.image, op.position)
}

type opImageRect struct {
	image    image.Image
	src, dst rendering.Rect
	quality  rendering.FilterQuality
}

func (op opImageRect) execute(canvas rendering.Canvas) {
	canvas.DrawImageRect(op.image, op.src, op.dst, op.quality)
}
