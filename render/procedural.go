package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
)

// ShadedBall rasterizes a lit sphere with transparent corners
func ShadedBall(size int, base, shade RGB) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	// Light from upper left
	lx, ly := -0.5, -0.6

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			nx := (float64(x) + 0.5 - r) / r
			ny := (float64(y) + 0.5 - r) / r
			d2 := nx*nx + ny*ny
			if d2 > 1 {
				continue
			}
			nz := math.Sqrt(1 - d2)
			lambert := math.Max(0, nx*lx+ny*ly+nz*0.6)
			col := shade.Blend(base, math.Min(1, lambert))
			if lambert > 0.95 {
				col = col.Blend(RGBWhite, (lambert-0.95)*10)
			}
			img.SetRGBA(x, y, col.Color())
		}
	}
	return img
}

// LoadPNG decodes a PNG file
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}
