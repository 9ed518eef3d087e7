package render

import "image"

// Canvas is the drawing context supplied by a host
// Coordinates are in the canvas's native units (cells or pixels), y grows downward
// Implementations clip out-of-bounds primitives silently
type Canvas interface {
	Size() (width, height int)
	Clear(bg RGB)
	FillRect(x, y, w, h float64, c RGB)
	FillCircle(cx, cy, r float64, c RGB)
	DrawImage(img image.Image, x, y, w, h float64)
	Text(x, y float64, s string, fg RGB)
	// TextMetrics returns glyph advance and line height in canvas units
	TextMetrics() (charWidth, lineHeight float64)
}

// Drawer is implemented by components with visual output
type Drawer interface {
	Draw(c Canvas)
}
