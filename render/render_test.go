package render

import (
	"errors"
	"image"
	"math"
	"strings"
	"testing"
	"time"
)

func TestFillTrapezoidRows(t *testing.T) {
	rec := NewRecorder(80, 24)

	// Narrow far edge at row 10, wide near edge at row 20
	FillTrapezoid(rec, 40, 20, 20, 40, 10, 2, RgbRoadLight)

	rows := rec.Colored("rect", RgbRoadLight)
	if len(rows) != 10 {
		t.Fatalf("Expected 10 scanlines, got %d", len(rows))
	}
	if rows[0].Y != 10 {
		t.Errorf("Expected first row at y=10, got %f", rows[0].Y)
	}
	if rows[0].W >= rows[len(rows)-1].W {
		t.Errorf("Expected widening toward the near edge: %f >= %f", rows[0].W, rows[len(rows)-1].W)
	}
	for _, r := range rows {
		if c := r.X + r.W/2; math.Abs(c-40) > 1e-9 {
			t.Errorf("Expected row centered at 40, got %f", c)
		}
	}
}

func TestFillTrapezoidClipsToCanvas(t *testing.T) {
	rec := NewRecorder(80, 24)
	FillTrapezoid(rec, 40, -5, 10, 40, 40, 30, RgbRoadDark)

	if n := rec.Count("rect"); n != 24 {
		t.Errorf("Expected rows clipped to canvas height 24, got %d", n)
	}
}

func TestBlend(t *testing.T) {
	if got := RGBBlack.Blend(RGBWhite, 0); got != RGBBlack {
		t.Errorf("Alpha 0 must keep dst, got %v", got)
	}
	if got := RGBBlack.Blend(RGBWhite, 1); got != RGBWhite {
		t.Errorf("Alpha 1 must take src, got %v", got)
	}
	mid := RGBBlack.Blend(RGBWhite, 0.5)
	if mid.R < 126 || mid.R > 128 {
		t.Errorf("Expected mid gray, got %v", mid)
	}
}

func TestFogFadesTowardHorizon(t *testing.T) {
	if got := RgbRoadDark.Fog(RgbHorizon, 0); got != RgbRoadDark {
		t.Errorf("No fog at the camera, got %v", got)
	}
	if got := RgbRoadDark.Fog(RgbHorizon, 1); got != RgbHorizon {
		t.Errorf("Full fog at the horizon, got %v", got)
	}

	prev := RGBBlack
	for _, d := range []float64{0.25, 0.5, 0.75} {
		got := RGBBlack.Fog(RGBWhite, d)
		if got.R <= prev.R {
			t.Errorf("Expected fog to brighten with distance at %v, got %v after %v", d, got, prev)
		}
		prev = got
	}
}

func TestSpriteFallbackUntilReady(t *testing.T) {
	release := make(chan struct{})
	s := LoadSprite("ball", func() (image.Image, error) {
		<-release
		return ShadedBall(8, RgbBall, RgbBallShade), nil
	})

	rec := NewRecorder(10, 10)
	fallbacks := 0
	s.DrawOr(rec, 0, 0, 4, 4, func() { fallbacks++ })
	if fallbacks != 1 || rec.Count("image") != 0 {
		t.Fatal("Expected fallback before load completes")
	}

	close(release)
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Sprite load did not finish")
	}

	s.DrawOr(rec, 0, 0, 4, 4, func() { fallbacks++ })
	if fallbacks != 1 || rec.Count("image") != 1 {
		t.Errorf("Expected image draw after load, fallbacks=%d images=%d", fallbacks, rec.Count("image"))
	}
}

func TestSpriteLoadFailureKeepsFallback(t *testing.T) {
	boom := errors.New("missing")
	s := LoadSprite("ball", func() (image.Image, error) { return nil, boom })
	<-s.Done()

	if s.Ready() {
		t.Error("Failed sprite must not be ready")
	}
	if !errors.Is(s.Err(), boom) {
		t.Errorf("Expected load error, got %v", s.Err())
	}

	var nilSprite *Sprite
	used := false
	nilSprite.DrawOr(NewRecorder(1, 1), 0, 0, 1, 1, func() { used = true })
	if !used {
		t.Error("Nil sprite must draw the fallback")
	}
}

func TestDrawHUD(t *testing.T) {
	rec := NewRecorder(80, 24)
	DrawHUD(rec, HUD{Score: 12, Best: 40, Streak: 11, Combo: true, Speed: 16, Elapsed: 75 * time.Second, Preset: "classic"})

	var all []string
	for _, op := range rec.Ops {
		if op.Kind == "text" {
			all = append(all, op.Text)
		}
	}
	joined := strings.Join(all, "|")
	for _, want := range []string{"SCORE 12", "BEST 40", "STREAK 11 COMBO", "01:15"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected HUD to contain %q, got %q", want, joined)
		}
	}
}

func TestDrawOverlayCentersTitle(t *testing.T) {
	rec := NewRecorder(40, 20)
	DrawOverlay(rec, "PAUSED", "press p")

	if !rec.HasText("PAUSED") {
		t.Fatal("Expected overlay title")
	}
	for _, op := range rec.Ops {
		if op.Text == "PAUSED" && op.X != 17 {
			t.Errorf("Expected title at x=17, got %f", op.X)
		}
	}
}

func TestLoadBallSprite(t *testing.T) {
	s := LoadBallSprite("", 16)
	<-s.Done()
	if !s.Ready() {
		t.Fatalf("Expected procedural ball, got error %v", s.Err())
	}
	if b := s.Image().Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("Expected 16x16 ball, got %v", b)
	}

	missing := LoadBallSprite("/nonexistent/ball.png", 16)
	<-missing.Done()
	if missing.Ready() || missing.Err() == nil {
		t.Error("Expected a missing PNG to fail and leave the fallback")
	}
}
