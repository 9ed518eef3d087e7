// Package tui draws the game into a terminal through tcell
// Each cell holds two pixels stacked with the upper half-block glyph, doubling vertical resolution
package tui

import (
	"image"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/roadrunner/render"
)

// halfBlock paints the upper pixel as foreground and the lower as background
const halfBlock = '▀'

// glyph is one character of the text layer
// A zero rune marks the right half of a wide glyph
type glyph struct {
	r  rune
	fg render.RGB
}

// Canvas is a render.Canvas over a pixel grid of cols x rows*2
// Text is kept on a separate cell layer and composited over the pixels on Flush
type Canvas struct {
	cols, rows int
	pixels     []render.RGB
	text       []glyph
	touched    []bool // Cells carrying text this frame
}

// NewCanvas creates a canvas for a terminal of cols x rows cells
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize adjusts dimensions, reallocates only if capacity is insufficient
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	cells := cols * rows
	if cap(c.pixels) < 2*cells {
		c.pixels = make([]render.RGB, 2*cells)
		c.text = make([]glyph, cells)
		c.touched = make([]bool, cells)
	} else {
		c.pixels = c.pixels[:2*cells]
		c.text = c.text[:cells]
		c.touched = c.touched[:cells]
	}
	c.cols, c.rows = cols, rows
	c.Clear(render.RgbSky)
}

// Size returns the pixel grid, twice as tall as the cell grid
func (c *Canvas) Size() (int, int) { return c.cols, c.rows * 2 }

// Cells returns the terminal grid
func (c *Canvas) Cells() (int, int) { return c.cols, c.rows }

// TextMetrics is one column wide and one cell (two pixels) tall
func (c *Canvas) TextMetrics() (float64, float64) { return 1, 2 }

// Clear fills every pixel with bg and drops text, using exponential copy
func (c *Canvas) Clear(bg render.RGB) {
	if len(c.pixels) == 0 {
		return
	}
	c.pixels[0] = bg
	for filled := 1; filled < len(c.pixels); filled *= 2 {
		copy(c.pixels[filled:], c.pixels[:filled])
	}
	c.text[0] = glyph{}
	c.touched[0] = false
	for filled := 1; filled < len(c.text); filled *= 2 {
		copy(c.text[filled:], c.text[:filled])
		copy(c.touched[filled:], c.touched[:filled])
	}
}

func (c *Canvas) set(x, y int, col render.RGB) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return
	}
	c.pixels[y*c.cols+x] = col
}

// span converts a float extent to the pixel range it covers
func span(pos, size float64, limit int) (int, int) {
	lo := max(int(math.Round(pos)), 0)
	hi := min(int(math.Round(pos+size)), limit)
	return lo, hi
}

func (c *Canvas) FillRect(x, y, w, h float64, col render.RGB) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, x1 := span(x, w, c.cols)
	y0, y1 := span(y, h, c.rows*2)
	// Thin shapes that round away still get a pixel
	if x1 == x0 && x0 < c.cols && w > 0 {
		x1 = x0 + 1
	}
	if y1 == y0 && y0 < c.rows*2 && h > 0 {
		y1 = y0 + 1
	}
	for py := y0; py < y1; py++ {
		row := c.pixels[py*c.cols : (py+1)*c.cols]
		for px := x0; px < x1; px++ {
			row[px] = col
		}
	}
}

func (c *Canvas) FillCircle(cx, cy, r float64, col render.RGB) {
	if r <= 0 {
		return
	}
	if r < 0.75 {
		c.set(int(math.Floor(cx)), int(math.Floor(cy)), col)
		return
	}
	x0, x1 := span(cx-r, 2*r, c.cols)
	y0, y1 := span(cy-r, 2*r, c.rows*2)
	r2 := r * r
	for py := y0; py < y1; py++ {
		dy := float64(py) + 0.5 - cy
		for px := x0; px < x1; px++ {
			dx := float64(px) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				c.pixels[py*c.cols+px] = col
			}
		}
	}
}

// DrawImage nearest-samples img into the box; mostly transparent pixels are skipped
func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	b := img.Bounds()
	x0, x1 := span(x, w, c.cols)
	y0, y1 := span(y, h, c.rows*2)
	for py := y0; py < y1; py++ {
		sy := b.Min.Y + int((float64(py)+0.5-y)/h*float64(b.Dy()))
		for px := x0; px < x1; px++ {
			sx := b.Min.X + int((float64(px)+0.5-x)/w*float64(b.Dx()))
			if sx < b.Min.X || sx >= b.Max.X || sy < b.Min.Y || sy >= b.Max.Y {
				continue
			}
			src := img.At(sx, sy)
			if _, _, _, a := src.RGBA(); a < 0x8000 {
				continue
			}
			c.pixels[py*c.cols+px] = render.FromColor(src)
		}
	}
}

// Text writes s on the cell row containing pixel row y
func (c *Canvas) Text(x, y float64, s string, fg render.RGB) {
	row := int(math.Floor(y / 2))
	if row < 0 || row >= c.rows {
		return
	}
	col := int(math.Round(x))
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > c.cols {
			return
		}
		if col >= 0 {
			idx := row*c.cols + col
			c.text[idx] = glyph{r: r, fg: fg}
			c.touched[idx] = true
			if w == 2 {
				c.text[idx+1] = glyph{fg: fg}
				c.touched[idx+1] = true
			}
		}
		col += w
	}
}

// Flush writes every cell to screen; the caller shows it
// Text cells take the upper pixel as background so overlays keep their box color
func (c *Canvas) Flush(screen tcell.Screen) {
	for row := 0; row < c.rows; row++ {
		upper := c.pixels[2*row*c.cols : (2*row+1)*c.cols]
		lower := c.pixels[(2*row+1)*c.cols : (2*row+2)*c.cols]
		for col := 0; col < c.cols; col++ {
			idx := row*c.cols + col
			if c.touched[idx] {
				g := c.text[idx]
				if g.r == 0 {
					// Covered by the wide glyph to the left
					continue
				}
				style := tcell.StyleDefault.Foreground(RGBToTcell(g.fg)).Background(RGBToTcell(upper[col]))
				screen.SetContent(col, row, g.r, nil, style)
				continue
			}
			style := tcell.StyleDefault.Foreground(RGBToTcell(upper[col])).Background(RGBToTcell(lower[col]))
			screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
}

// Pixel returns the color at a pixel, for tests and snapshots
func (c *Canvas) Pixel(x, y int) render.RGB {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return render.RGB{}
	}
	return c.pixels[y*c.cols+x]
}

// RGBToTcell converts RGB to tcell.Color
func RGBToTcell(rgb render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// TcellToRGB converts tcell.Color to RGB
// ColorDefault maps to the sky color
func TcellToRGB(col tcell.Color) render.RGB {
	if col == tcell.ColorDefault {
		return render.RgbSky
	}
	r, g, b := col.RGB()
	return render.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}
