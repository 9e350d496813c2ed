// Package imaging provides bitmap reduction helpers for widget content.
package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// ExtractThumbnail returns a width x height thumbnail holding the center of
// src: the source is cropped to the target aspect ratio about its center,
// then scaled down with a bicubic kernel. Returns nil when src is nil or
// either requested dimension is not positive.
func ExtractThumbnail(src image.Image, width, height int) image.Image {
	if src == nil || width <= 0 || height <= 0 {
		return nil
	}
	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, centerCrop(bounds, width, height), draw.Src, nil)
	return dst
}

// centerCrop returns the largest centered sub-rectangle of b with the
// target aspect ratio. Aspect ratios are compared with cross products to
// stay in integer arithmetic.
func centerCrop(b image.Rectangle, width, height int) image.Rectangle {
	srcW, srcH := b.Dx(), b.Dy()
	if srcW*height > width*srcH {
		// Source is wider than the target: trim left and right.
		cropW := width * srcH / height
		x0 := b.Min.X + (srcW-cropW)/2
		return image.Rect(x0, b.Min.Y, x0+cropW, b.Max.Y)
	}
	// Source is taller or matching: trim top and bottom.
	cropH := height * srcW / width
	y0 := b.Min.Y + (srcH-cropH)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+cropH)
}
