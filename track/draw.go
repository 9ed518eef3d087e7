package track

import (
	"math"
	"sort"

	"github.com/lixenwraith/roadrunner/render"
	"github.com/lixenwraith/roadrunner/vmath"
)

// rumbleScale widens the rumble strip past the road edge
const rumbleScale = 1.15

// markerWidth is the lane marker width in world units
const markerWidth = 0.04

// obstacleHeight is the box height as a fraction of its width
const obstacleHeight = 0.6

type strip struct {
	seg    Segment
	offset float64
	p      vmath.ScreenPoint
}

// Draw renders road and obstacles far to near
// Reads only; segments behind the near plane are skipped
// sprite is optional, obstacles fall back to boxes
func (t *Track) Draw(c render.Canvas, cam vmath.Camera, sprite *render.Sprite) {
	w, h := c.Size()
	vp := vmath.Viewport{Width: float64(w), Height: float64(h)}

	c.Clear(render.RgbSky)
	render.FillBand(c, vp.Horizon(), vp.Height, render.RgbGrassDark)

	strips := t.project(cam, vp)
	t.drawRoad(c, cam, strips)
	t.drawObstacles(c, cam, vp, strips, sprite)
}

// project maps visible segments near to far with accumulated curve offset
func (t *Track) project(cam vmath.Camera, vp vmath.Viewport) []strip {
	strips := make([]strip, 0, len(t.segments))
	offset, dx := 0.0, 0.0
	for _, s := range t.segments {
		if !cam.Visible(s.Forward) {
			continue
		}
		dx += s.Curve
		offset += dx
		p, ok := vmath.Project(vmath.WorldPoint{Lateral: offset, Forward: s.Forward}, cam, vp)
		if !ok {
			continue
		}
		strips = append(strips, strip{seg: s, offset: offset, p: p})
	}
	return strips
}

func (t *Track) drawRoad(c render.Canvas, cam vmath.Camera, strips []strip) {
	for i := len(strips) - 1; i > 0; i-- {
		far, near := strips[i], strips[i-1]
		fog := (near.seg.Forward - cam.Forward) / t.cfg.DrawDistance
		light := int(math.Floor(near.seg.Forward/t.cfg.StripeLength))%2 == 0

		grass, road, rumble := render.RgbGrassDark, render.RgbRoadDark, render.RgbRumbleDark
		if light {
			grass, road, rumble = render.RgbGrassLight, render.RgbRoadLight, render.RgbRumbleLight
		}

		render.FillBand(c, far.p.Y, near.p.Y, grass.Fog(render.RgbHorizon, fog))

		nhw := near.seg.Width / 2 * near.p.Scale
		fhw := far.seg.Width / 2 * far.p.Scale
		render.FillTrapezoid(c, near.p.X, near.p.Y, nhw*rumbleScale, far.p.X, far.p.Y, fhw*rumbleScale, rumble.Fog(render.RgbHorizon, fog))
		render.FillTrapezoid(c, near.p.X, near.p.Y, nhw, far.p.X, far.p.Y, fhw, road.Fog(render.RgbHorizon, fog))

		if !light {
			continue
		}
		for _, m := range t.markers() {
			render.FillTrapezoid(c,
				near.p.X+m*near.p.Scale, near.p.Y, markerWidth/2*near.p.Scale,
				far.p.X+m*far.p.Scale, far.p.Y, markerWidth/2*far.p.Scale,
				render.RgbLaneMarker.Fog(render.RgbHorizon, fog))
		}
	}
}

// markers returns lateral positions of lane dividers
func (t *Track) markers() []float64 {
	if t.continuous {
		return []float64{0}
	}
	out := make([]float64, 0, len(t.lanes)-1)
	for i := 1; i < len(t.lanes); i++ {
		out = append(out, float64(t.lanes[i-1]+t.lanes[i])/2*t.obs.LaneOffset)
	}
	return out
}

func (t *Track) drawObstacles(c render.Canvas, cam vmath.Camera, vp vmath.Viewport, strips []strip, sprite *render.Sprite) {
	for i := len(t.obstacles) - 1; i >= 0; i-- {
		ob := t.obstacles[i]
		if !cam.Visible(ob.Forward) {
			continue
		}
		p, ok := vmath.Project(vmath.WorldPoint{
			Lateral: ob.Lateral + offsetAt(strips, ob.Forward),
			Forward: ob.Forward,
		}, cam, vp)
		if !ok {
			continue
		}

		bw := t.obs.Width * p.Scale
		bh := t.obs.Width * obstacleHeight * p.Scale
		x, y := p.X-bw/2, p.Y-bh
		if y > vp.Height || x > vp.Width || x+bw < 0 {
			continue
		}
		fog := (ob.Forward - cam.Forward) / t.cfg.DrawDistance
		sprite.DrawOr(c, x, y, bw, bh, func() {
			c.FillRect(x, y, bw, bh, render.RgbObstacle.Fog(render.RgbHorizon, fog))
			c.FillRect(x, y, bw, math.Max(bh/5, 1), render.RgbObstacleTop.Fog(render.RgbHorizon, fog))
		})
	}
}

// offsetAt returns the curve offset of the strip covering forward
func offsetAt(strips []strip, forward float64) float64 {
	i := sort.Search(len(strips), func(i int) bool { return strips[i].seg.Forward > forward })
	if i == 0 {
		return 0
	}
	return strips[i-1].offset
}

// OffsetAt returns the visual curve offset at forward for the given camera
// Lets other drawers stay aligned with the bent road
func (t *Track) OffsetAt(cam vmath.Camera, forward float64) float64 {
	offset, dx := 0.0, 0.0
	for _, s := range t.segments {
		if s.Forward > forward {
			break
		}
		if !cam.Visible(s.Forward) {
			continue
		}
		dx += s.Curve
		offset += dx
	}
	return offset
}
