package testing

import (
	"fmt"
	"image"
	"math"

	"github.com/go-pivot/pivot/pkg/rendering"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// Recorder implements rendering.Canvas and records ops as DisplayOp values
// for assertions. Floats are rounded to 2 decimal places so expected values
// can be written literally.
type Recorder struct {
	ops  []DisplayOp
	size rendering.Size
}

// NewRecorder returns a Recorder reporting the given canvas size.
func NewRecorder(size rendering.Size) *Recorder {
	return &Recorder{size: size}
}

// Ops returns the recorded operations in call order.
func (c *Recorder) Ops() []DisplayOp {
	return c.ops
}

// OpNames returns just the operation names, in call order.
func (c *Recorder) OpNames() []string {
	names := make([]string, len(c.ops))
	for i, op := range c.ops {
		names[i] = op.Op
	}
	return names
}

// Reset discards all recorded operations.
func (c *Recorder) Reset() {
	c.ops = c.ops[:0]
}

func (c *Recorder) Save() {
	c.ops = append(c.ops, DisplayOp{Op: "save"})
}

func (c *Recorder) SaveLayerAlpha(bounds rendering.Rect, alpha float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "saveLayerAlpha",
		Params: opParams("bounds", serializeRect(bounds), "alpha", round2(alpha)),
	})
}

func (c *Recorder) Restore() {
	c.ops = append(c.ops, DisplayOp{Op: "restore"})
}

func (c *Recorder) Translate(dx, dy float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "translate",
		Params: opParams("dx", round2(dx), "dy", round2(dy)),
	})
}

func (c *Recorder) Scale(sx, sy float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "scale",
		Params: opParams("sx", round2(sx), "sy", round2(sy)),
	})
}

func (c *Recorder) Rotate(radians float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "rotate",
		Params: opParams("radians", round2(radians)),
	})
}

func (c *Recorder) ClipRect(rect rendering.Rect) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clipRect",
		Params: opParams("rect", serializeRect(rect)),
	})
}

func (c *Recorder) Clear(color rendering.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: opParams("color", serializeColor(color)),
	})
}

func (c *Recorder) DrawRect(rect rendering.Rect, paint rendering.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "drawRect",
		Params: opParams("rect", serializeRect(rect), "color", serializeColor(paint.Color)),
	})
}

func (c *Recorder) DrawImage(_ image.Image, position rendering.Offset) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "drawImage",
		Params: opParams("x", round2(position.X), "y", round2(position.Y)),
	})
}

func (c *Recorder) DrawImageRect(_ image.Image, _, dstRect rendering.Rect, _ rendering.FilterQuality) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "drawImageRect",
		Params: opParams("dst", serializeRect(dstRect)),
	})
}

func (c *Recorder) Size() rendering.Size {
	return c.size
}

// --- Serialization helpers ---

func serializeRect(r rendering.Rect) map[string]any {
	return opParams(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializeColor(c rendering.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// opParams creates a map from alternating key-value pairs.
func opParams(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
