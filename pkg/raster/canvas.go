// Package raster implements rendering.Canvas in software on an image.RGBA,
// for producing frames without a GPU surface.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/go-pivot/pivot/pkg/rendering"
)

// Canvas rasterizes drawing operations onto an RGBA bitmap. Transforms are
// tracked as an affine matrix; Save and Restore push and pop the matrix and
// clip together. Alpha layers render into a scratch bitmap that Restore
// composites back through a uniform alpha mask.
type Canvas struct {
	root   *image.RGBA
	dst    *image.RGBA
	matrix f64.Aff3
	clip   image.Rectangle
	stack  []state
}

type state struct {
	matrix f64.Aff3
	clip   image.Rectangle

	// Set when the entry was pushed by SaveLayerAlpha.
	layer *image.RGBA
	base  *image.RGBA
	alpha float64
}

// NewCanvas returns a Canvas drawing onto dst with an identity transform and
// the clip open to the full bitmap.
func NewCanvas(dst *image.RGBA) *Canvas {
	return &Canvas{
		root:   dst,
		dst:    dst,
		matrix: f64.Aff3{1, 0, 0, 0, 1, 0},
		clip:   dst.Bounds(),
	}
}

// Image returns the destination bitmap.
func (c *Canvas) Image() *image.RGBA {
	return c.root
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, state{matrix: c.matrix, clip: c.clip})
}

func (c *Canvas) SaveLayerAlpha(bounds rendering.Rect, alpha float64) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	region := c.clip
	if !bounds.IsEmpty() {
		region = c.transformBounds(bounds).Intersect(c.clip)
	}
	layer := image.NewRGBA(region)
	c.stack = append(c.stack, state{
		matrix: c.matrix,
		clip:   c.clip,
		layer:  layer,
		base:   c.dst,
		alpha:  alpha,
	})
	c.dst = layer
	c.clip = region
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	st := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	if st.layer != nil {
		mask := image.NewUniform(color.Alpha{A: uint8(st.alpha*255 + 0.5)})
		draw.DrawMask(st.base, st.layer.Bounds(), st.layer, st.layer.Bounds().Min, mask, image.Point{}, draw.Over)
		c.dst = st.base
	}
	c.matrix = st.matrix
	c.clip = st.clip
}

func (c *Canvas) Translate(dx, dy float64) {
	c.matrix = concat(c.matrix, f64.Aff3{1, 0, dx, 0, 1, dy})
}

func (c *Canvas) Scale(sx, sy float64) {
	c.matrix = concat(c.matrix, f64.Aff3{sx, 0, 0, 0, sy, 0})
}

func (c *Canvas) Rotate(radians float64) {
	sin, cos := math.Sincos(radians)
	c.matrix = concat(c.matrix, f64.Aff3{cos, -sin, 0, sin, cos, 0})
}

func (c *Canvas) ClipRect(rect rendering.Rect) {
	c.clip = c.clip.Intersect(c.transformBounds(rect))
}

func (c *Canvas) Clear(col rendering.Color) {
	draw.Draw(c.dst, c.clip, image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
}

// DrawRect fills the transformed rect's axis-aligned bounding box. Rotated
// rects are not path-filled.
func (c *Canvas) DrawRect(rect rendering.Rect, paint rendering.Paint) {
	r := c.transformBounds(rect).Intersect(c.clip)
	if r.Empty() {
		return
	}
	draw.Draw(c.dst, r, image.NewUniform(paint.Color.NRGBA()), image.Point{}, draw.Over)
}

func (c *Canvas) DrawImage(img image.Image, position rendering.Offset) {
	if img == nil {
		return
	}
	b := img.Bounds()
	dst := rendering.RectFromLTWH(position.X, position.Y, float64(b.Dx()), float64(b.Dy()))
	c.DrawImageRect(img, rendering.Rect{}, dst, rendering.FilterQualityLow)
}

func (c *Canvas) DrawImageRect(img image.Image, srcRect, dstRect rendering.Rect, quality rendering.FilterQuality) {
	if img == nil || dstRect.IsEmpty() {
		return
	}
	sr := img.Bounds()
	if !srcRect.IsEmpty() {
		sr = image.Rect(
			int(srcRect.Left+0.5), int(srcRect.Top+0.5),
			int(srcRect.Right+0.5), int(srcRect.Bottom+0.5),
		)
		sr = sr.Intersect(img.Bounds())
	}
	if sr.Empty() {
		return
	}

	// Compose the source-to-destination mapping with the current transform.
	sx := dstRect.Width() / float64(sr.Dx())
	sy := dstRect.Height() / float64(sr.Dy())
	s2d := f64.Aff3{
		sx, 0, dstRect.Left - sx*float64(sr.Min.X),
		0, sy, dstRect.Top - sy*float64(sr.Min.Y),
	}
	m := concat(c.matrix, s2d)

	clipped := c.dst.SubImage(c.clip).(*image.RGBA)
	interpolator(quality).Transform(clipped, m, img, sr, draw.Over, nil)
}

func (c *Canvas) Size() rendering.Size {
	b := c.root.Bounds()
	return rendering.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// transformBounds maps a rect through the current matrix and returns the
// pixel-aligned bounding box of the result.
func (c *Canvas) transformBounds(r rendering.Rect) image.Rectangle {
	x0, y0 := apply(c.matrix, r.Left, r.Top)
	x1, y1 := apply(c.matrix, r.Right, r.Top)
	x2, y2 := apply(c.matrix, r.Left, r.Bottom)
	x3, y3 := apply(c.matrix, r.Right, r.Bottom)
	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}

func interpolator(quality rendering.FilterQuality) draw.Interpolator {
	switch quality {
	case rendering.FilterQualityNone:
		return draw.NearestNeighbor
	case rendering.FilterQualityHigh:
		return draw.CatmullRom
	default:
		return draw.ApproxBiLinear
	}
}

// concat returns m*n, the transform applying n first and m second.
func concat(m, n f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

func apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}
