package render

import (
	"fmt"
	"time"
)

// HUD is the per-frame status line content
type HUD struct {
	Score   int
	Best    int
	Streak  int
	Combo   bool
	Speed   float64
	Elapsed time.Duration
	Preset  string
}

// DrawHUD renders the status line along the top edge
func DrawHUD(c Canvas, h HUD) {
	cw, lh := c.TextMetrics()
	w, _ := c.Size()
	c.FillRect(0, 0, float64(w), lh, RgbOverlayBg)

	left := fmt.Sprintf(" SCORE %d  BEST %d  SPEED %.1f", h.Score, h.Best, h.Speed)
	c.Text(0, 0, left, RgbHudText)

	streak := fmt.Sprintf("STREAK %d", h.Streak)
	col := RgbHudDim
	if h.Combo {
		streak += " COMBO"
		col = RgbHudAccent
	}
	x := float64(len(left)+2) * cw
	c.Text(x, 0, streak, col)

	right := fmt.Sprintf("%s %s ", h.Preset, formatElapsed(h.Elapsed))
	c.Text(float64(w)-float64(len(right))*cw, 0, right, RgbHudDim)
}

// DrawOverlay renders a centered title box with optional lines beneath
func DrawOverlay(c Canvas, title string, lines ...string) {
	cw, lh := c.TextMetrics()
	w, h := c.Size()

	widest := len(title)
	for _, l := range lines {
		widest = max(widest, len(l))
	}

	boxW := float64(widest+4) * cw
	boxH := float64(len(lines)+3) * lh
	x0 := (float64(w) - boxW) / 2
	y0 := (float64(h) - boxH) / 2
	c.FillRect(x0, y0, boxW, boxH, RgbOverlayBg)

	center := func(s string) float64 {
		return (float64(w) - float64(len(s))*cw) / 2
	}
	c.Text(center(title), y0+lh, title, RgbHudAccent)
	for i, l := range lines {
		c.Text(center(l), y0+float64(i+2)*lh, l, RgbHudText)
	}
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
