package vmath

// NearClip is the minimum forward distance in front of the camera that projects
// Anything at or behind Camera.Forward+NearClip is not visible
const NearClip = 1e-3

// WorldPoint is a position on the track
// Lateral is offset from the track centerline, Forward is distance from the run origin
type WorldPoint struct {
	Lateral float64
	Height  float64
	Forward float64
}

// ScreenPoint is a projected position with the perspective scale at that depth
type ScreenPoint struct {
	X, Y  float64
	Scale float64
}

// Camera is a pinhole camera looking down the track
// Depth is the focal distance expressed in screen units per world unit at distance 1
type Camera struct {
	Forward float64
	Height  float64
	Depth   float64
}

// Viewport is the drawing surface size in screen units (cells or pixels)
type Viewport struct {
	Width, Height float64
}

// Visible reports whether a forward distance lies in front of the camera's near plane
func (c Camera) Visible(forward float64) bool {
	return forward-c.Forward > NearClip
}

// Project maps a world point to screen space with a perspective divide
// Returns false for points at or behind the near plane; callers skip those
// Screen y grows downward: ground below the camera lands below the horizon line
func Project(p WorldPoint, cam Camera, vp Viewport) (ScreenPoint, bool) {
	dz := p.Forward - cam.Forward
	if dz <= NearClip {
		return ScreenPoint{}, false
	}
	scale := cam.Depth / dz
	return ScreenPoint{
		X:     p.Lateral*scale + vp.Width/2,
		Y:     vp.Height/2 - (p.Height-cam.Height)*scale,
		Scale: scale,
	}, true
}

// Horizon returns the screen row of the vanishing point
func (vp Viewport) Horizon() float64 {
	return vp.Height / 2
}
