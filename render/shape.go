package render

import "math"

// FillTrapezoid fills a horizontal-edged trapezoid between two scanlines
// (x1, y1, hw1) is one edge center and half-width, (x2, y2, hw2) the other
// Rows are filled with one FillRect each so every Canvas shares the algorithm
func FillTrapezoid(c Canvas, x1, y1, hw1, x2, y2, hw2 float64, col RGB) {
	if y1 > y2 {
		x1, y1, hw1, x2, y2, hw2 = x2, y2, hw2, x1, y1, hw1
	}

	_, h := c.Size()
	top := math.Max(math.Floor(y1), 0)
	bottom := math.Min(math.Ceil(y2), float64(h))
	span := y2 - y1

	for row := top; row < bottom; row++ {
		t := 0.0
		if span > 0 {
			t = (row + 0.5 - y1) / span
			t = math.Max(0, math.Min(1, t))
		}
		cx := x1 + (x2-x1)*t
		hw := hw1 + (hw2-hw1)*t
		c.FillRect(cx-hw, row, 2*hw, 1, col)
	}
}

// FillBand fills full-width rows between two scanlines
func FillBand(c Canvas, y1, y2 float64, col RGB) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	w, h := c.Size()
	top := math.Max(math.Floor(y1), 0)
	bottom := math.Min(math.Ceil(y2), float64(h))
	if bottom <= top {
		return
	}
	c.FillRect(0, top, float64(w), bottom-top, col)
}
