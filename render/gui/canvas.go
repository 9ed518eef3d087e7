// Package gui draws the game into an ebiten window
package gui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/roadrunner/render"
)

// Debug font cell of ebitenutil.DebugPrint
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// Canvas is a render.Canvas over the current ebiten frame
// Begin must be called with the frame's screen before drawing
type Canvas struct {
	dst  *ebiten.Image
	w, h int

	// Uploaded sprites keyed by source image; sources are long-lived
	images map[image.Image]*ebiten.Image
	text   *ebiten.Image
	textOp ebiten.DrawImageOptions
}

// NewCanvas creates an unbound canvas
func NewCanvas() *Canvas {
	return &Canvas{images: make(map[image.Image]*ebiten.Image)}
}

// Begin binds the canvas to this frame's destination
func (c *Canvas) Begin(dst *ebiten.Image) {
	c.dst = dst
	if dst == nil {
		c.w, c.h = 0, 0
		return
	}
	b := dst.Bounds()
	c.w, c.h = b.Dx(), b.Dy()
}

func (c *Canvas) Size() (int, int) { return c.w, c.h }

func (c *Canvas) TextMetrics() (float64, float64) { return glyphWidth, glyphHeight }

func (c *Canvas) Clear(bg render.RGB) {
	if c.dst != nil {
		c.dst.Fill(bg.Color())
	}
}

func (c *Canvas) FillRect(x, y, w, h float64, col render.RGB) {
	if c.dst == nil || w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), col.Color(), false)
}

func (c *Canvas) FillCircle(cx, cy, r float64, col render.RGB) {
	if c.dst == nil || r <= 0 {
		return
	}
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(r), col.Color(), true)
}

// DrawImage scales img into the box; the first draw of an image uploads it
func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	if c.dst == nil || img == nil || w <= 0 || h <= 0 {
		return
	}
	eimg, ok := c.images[img]
	if !ok {
		eimg = ebiten.NewImageFromImage(img)
		c.images[img] = eimg
	}
	b := eimg.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(eimg, op)
}

// Text prints s in fg; the debug font is white so it is drawn offscreen and tinted
func (c *Canvas) Text(x, y float64, s string, fg render.RGB) {
	if c.dst == nil || s == "" {
		return
	}
	need := textWidth(s)
	if c.text == nil || c.text.Bounds().Dx() < need {
		c.text = ebiten.NewImage(max(need, 256), glyphHeight)
	}
	c.text.Clear()
	ebitenutil.DebugPrintAt(c.text, s, 0, 0)

	c.textOp.GeoM.Reset()
	c.textOp.GeoM.Translate(x, y)
	c.textOp.ColorScale.Reset()
	c.textOp.ColorScale.ScaleWithColor(fg.Color())
	c.dst.DrawImage(c.text.SubImage(image.Rect(0, 0, need, glyphHeight)).(*ebiten.Image), &c.textOp)
}

// textWidth is the pixel width of s in the debug font
func textWidth(s string) int {
	n := 0
	for range s {
		n++
	}
	return max(n, 1) * glyphWidth
}
