package render

import (
	"image"
	"log"
	"sync/atomic"
)

// Sprite is an image loaded in the background
// Draw calls made before the load completes use the caller's fallback shape
type Sprite struct {
	name string
	img  atomic.Pointer[image.Image]
	err  atomic.Pointer[error]
	done chan struct{}
}

// LoadSprite starts loading in a goroutine and returns immediately
func LoadSprite(name string, load func() (image.Image, error)) *Sprite {
	s := &Sprite{name: name, done: make(chan struct{})}
	go func() {
		defer close(s.done)
		img, err := load()
		if err != nil {
			log.Printf("sprite %s: load failed, using fallback: %v", name, err)
			s.err.Store(&err)
			return
		}
		s.img.Store(&img)
	}()
	return s
}

// Ready reports whether the image is available; nil sprites are never ready
func (s *Sprite) Ready() bool {
	return s != nil && s.img.Load() != nil
}

// Image returns the loaded image or nil
func (s *Sprite) Image() image.Image {
	if s == nil {
		return nil
	}
	if p := s.img.Load(); p != nil {
		return *p
	}
	return nil
}

// Err returns the load error, if loading finished with one
func (s *Sprite) Err() error {
	if s == nil {
		return nil
	}
	if p := s.err.Load(); p != nil {
		return *p
	}
	return nil
}

// Done is closed once loading finishes either way
func (s *Sprite) Done() <-chan struct{} {
	return s.done
}

// DrawOr draws the sprite into the box when ready, else calls fallback
func (s *Sprite) DrawOr(c Canvas, x, y, w, h float64, fallback func()) {
	if img := s.Image(); img != nil {
		c.DrawImage(img, x, y, w, h)
		return
	}
	fallback()
}

// LoadBallSprite loads the ball from a PNG, or rasterizes the shaded ball at size when path is empty
func LoadBallSprite(path string, size int) *Sprite {
	return LoadSprite("ball", func() (image.Image, error) {
		if path != "" {
			return LoadPNG(path)
		}
		return ShadedBall(size, RgbBall, RgbBallShade), nil
	})
}
