package player

import (
	"github.com/lixenwraith/roadrunner/render"
	"github.com/lixenwraith/roadrunner/vmath"
)

// Draw renders the ball at its position shifted by the road's curve offset
// Uses sprite when loaded, otherwise a shaded circle
func (p *Player) Draw(c render.Canvas, cam vmath.Camera, offset float64, sprite *render.Sprite) {
	w, h := c.Size()
	vp := vmath.Viewport{Width: float64(w), Height: float64(h)}

	pos := p.Position()
	pos.Lateral += offset

	center, ok := vmath.Project(pos, cam, vp)
	if !ok {
		return
	}
	ground, _ := vmath.Project(vmath.WorldPoint{Lateral: pos.Lateral, Forward: pos.Forward}, cam, vp)

	r := p.radius * center.Scale
	c.FillRect(ground.X-r, ground.Y-r/4, 2*r, r/2, render.RgbRoadDark.Blend(render.RGBBlack, 0.5))

	sprite.DrawOr(c, center.X-r, center.Y-r, 2*r, 2*r, func() {
		c.FillCircle(center.X, center.Y, r, render.RgbBallShade)
		c.FillCircle(center.X-r/4, center.Y-r/4, r*0.6, render.RgbBall)
	})
}
