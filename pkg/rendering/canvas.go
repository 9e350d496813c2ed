package rendering

import "image"

// FilterQuality controls image sampling quality during scaling.
type FilterQuality int

const (
	FilterQualityNone   FilterQuality = iota // Nearest neighbor (pixelated)
	FilterQualityLow                         // Bilinear
	FilterQualityMedium                      // Bilinear, mipmaps where the backend has them
	FilterQualityHigh                        // Bicubic
)

// Canvas records or renders drawing commands.
type Canvas interface {
	// Save pushes the current transform and clip state.
	Save()

	// SaveLayerAlpha saves a new layer with the given opacity (0.0 to 1.0).
	// All drawing until the matching Restore() call will be composited with this opacity.
	SaveLayerAlpha(bounds Rect, alpha float64)

	// Restore pops the most recent transform and clip state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// Scale scales the coordinate system by the given factors.
	Scale(sx, sy float64)

	// Rotate rotates the coordinate system by radians.
	Rotate(radians float64)

	// ClipRect restricts future drawing to the given rectangle.
	ClipRect(rect Rect)

	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect Rect, paint Paint)

	// DrawImage draws an image with its top-left corner at the given position.
	DrawImage(image image.Image, position Offset)

	// DrawImageRect draws an image from srcRect to dstRect with sampling quality.
	// srcRect selects the source region (zero rect = entire image).
	DrawImageRect(img image.Image, srcRect, dstRect Rect, quality FilterQuality)

	// Size returns the size of the canvas in pixels.
	Size() Size
}
