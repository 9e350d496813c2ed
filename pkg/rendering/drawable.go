package rendering

import (
	"image"
	"image/draw"
)

// Drawable is content that can paint itself onto a canvas.
// Implementations draw with their top-left corner at the canvas origin;
// callers position them with canvas transforms.
type Drawable interface {
	// Bounds returns the intrinsic extent of the content.
	Bounds() Rect

	// Draw paints the content onto the canvas.
	Draw(canvas Canvas)
}

// ImageDrawable renders a bitmap at its intrinsic size.
type ImageDrawable struct {
	// Quality selects the sampling filter used when the canvas transform
	// scales the bitmap.
	Quality FilterQuality

	source image.Image
	rgba   *image.RGBA
}

// NewImageDrawable wraps an image for drawing. The pixel data is converted
// to RGBA once, up front.
func NewImageDrawable(src image.Image) *ImageDrawable {
	return &ImageDrawable{
		Quality: FilterQualityLow,
		source:  src,
		rgba:    ToRGBA(src),
	}
}

// Image returns the original source image.
func (d *ImageDrawable) Image() image.Image {
	return d.source
}

// Bounds returns the intrinsic size of the bitmap at the origin.
func (d *ImageDrawable) Bounds() Rect {
	if d.rgba == nil {
		return Rect{}
	}
	b := d.rgba.Bounds()
	return RectFromLTWH(0, 0, float64(b.Dx()), float64(b.Dy()))
}

// Draw paints the bitmap with its top-left corner at the origin.
func (d *ImageDrawable) Draw(canvas Canvas) {
	bounds := d.Bounds()
	if d.rgba == nil || bounds.IsEmpty() {
		return
	}
	canvas.DrawImageRect(d.rgba, Rect{}, bounds, d.Quality)
}

// ToRGBA converts an image to RGBA, returning the input unchanged when it
// already is one. Returns nil for nil or empty images.
//
// If callers mutate pixel data in place on the same image.Image instance,
// they must pass a new instance to see the change reflected.
func ToRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	bounds := src.Bounds()
	if bounds.Empty() {
		return nil
	}
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)
	return rgba
}
