package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels, decoupled from any backend
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Fog fades toward the horizon color by distance fraction t in [0,1]
// Blending is done in Lab so distant road keeps its hue instead of going grey
func (dst RGB) Fog(fog RGB, t float64) RGB {
	if t <= 0 {
		return dst
	}
	if t >= 1 {
		return fog
	}
	near, _ := colorful.MakeColor(dst.Color())
	far, _ := colorful.MakeColor(fog.Color())
	r, g, b := near.BlendLab(far, t*t).Clamped().RGB255()
	return RGB{r, g, b}
}

// Color converts to the image/color model used by image-backed canvases
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// FromColor converts any color.Color, dropping alpha
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}
