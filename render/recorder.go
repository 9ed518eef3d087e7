package render

import "image"

// Op is one recorded drawing call
type Op struct {
	Kind       string
	X, Y, W, H float64
	Color      RGB
	Text       string
}

// Recorder is a Canvas that stores calls instead of drawing
// Used by headless runs and draw tests
type Recorder struct {
	Width, Height int
	Ops           []Op
}

// NewRecorder creates a recorder of the given size
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) Clear(bg RGB) {
	r.Ops = r.Ops[:0]
	r.Ops = append(r.Ops, Op{Kind: "clear", W: float64(r.Width), H: float64(r.Height), Color: bg})
}

func (r *Recorder) FillRect(x, y, w, h float64, c RGB) {
	r.Ops = append(r.Ops, Op{Kind: "rect", X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, rad float64, c RGB) {
	r.Ops = append(r.Ops, Op{Kind: "circle", X: cx, Y: cy, W: rad, H: rad, Color: c})
}

func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: "image", X: x, Y: y, W: w, H: h})
}

func (r *Recorder) Text(x, y float64, s string, fg RGB) {
	r.Ops = append(r.Ops, Op{Kind: "text", X: x, Y: y, Color: fg, Text: s})
}

func (r *Recorder) TextMetrics() (float64, float64) { return 1, 1 }

// Count returns the number of ops of a kind
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Colored returns ops of a kind drawn with color c
func (r *Recorder) Colored(kind string, c RGB) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind && op.Color == c {
			out = append(out, op)
		}
	}
	return out
}

// HasText reports whether any text op contains s exactly
func (r *Recorder) HasText(s string) bool {
	for _, op := range r.Ops {
		if op.Kind == "text" && op.Text == s {
			return true
		}
	}
	return false
}

// Reset drops recorded ops
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
