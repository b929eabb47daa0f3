package engine

import (
	"math"
	"testing"

	"github.com/verte-zerg/playdeck/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestToNormalizedMapsCorners(t *testing.T) {
	ref := model.Rect{Left: 10, Top: 20, Width: 200, Height: 100}

	p := ToNormalized(model.Point{X: 10, Y: 20}, ref)
	if !almostEqual(p.X, 0) || !almostEqual(p.Y, 0) {
		t.Fatalf("expected origin, got %+v", p)
	}
	p = ToNormalized(model.Point{X: 210, Y: 120}, ref)
	if !almostEqual(p.X, 100) || !almostEqual(p.Y, 100) {
		t.Fatalf("expected (100,100), got %+v", p)
	}
}

func TestToNormalizedDoesNotClamp(t *testing.T) {
	ref := model.Rect{Width: 100, Height: 100}
	p := ToNormalized(model.Point{X: -10, Y: 150}, ref)
	if !almostEqual(p.X, -10) || !almostEqual(p.Y, 150) {
		t.Fatalf("expected unclamped point, got %+v", p)
	}
}

func TestToNormalizedZeroRect(t *testing.T) {
	p := ToNormalized(model.Point{X: 5, Y: 5}, model.Rect{})
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		t.Fatalf("expected no NaN, got %+v", p)
	}
}

func TestFromNormalizedRoundTrip(t *testing.T) {
	ref := model.Rect{Left: 3, Top: 7, Width: 80, Height: 40}
	in := model.Point{X: 25, Y: 75}
	out := ToNormalized(FromNormalized(in, ref), ref)
	if !almostEqual(out.X, in.X) || !almostEqual(out.Y, in.Y) {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}

func TestAspectFitLetterboxesWideContainer(t *testing.T) {
	container := model.Rect{Width: 200, Height: 100}
	fit := AspectFit(model.Size{Width: 100, Height: 100}, container)
	if !almostEqual(fit.Left, 50) || !almostEqual(fit.Top, 0) {
		t.Fatalf("unexpected offset: %+v", fit)
	}
	if !almostEqual(fit.Width, 100) || !almostEqual(fit.Height, 100) {
		t.Fatalf("unexpected size: %+v", fit)
	}
}

func TestAspectFitUnknownSizeUsesContainer(t *testing.T) {
	container := model.Rect{Left: 1, Top: 2, Width: 30, Height: 40}
	if fit := AspectFit(model.Size{}, container); fit != container {
		t.Fatalf("expected container, got %+v", fit)
	}
}

func TestToNormalizedFitCentreAndLetterbox(t *testing.T) {
	container := model.Rect{Width: 200, Height: 100}
	natural := model.Size{Width: 400, Height: 400}

	centre := ToNormalizedFit(model.Point{X: 100, Y: 50}, natural, container)
	if !almostEqual(centre.X, 50) || !almostEqual(centre.Y, 50) {
		t.Fatalf("expected centre (50,50), got %+v", centre)
	}

	bar := ToNormalizedFit(model.Point{X: 10, Y: 50}, natural, container)
	if bar.X >= 0 {
		t.Fatalf("expected point in letterbox to map below 0, got %+v", bar)
	}
	bar = ToNormalizedFit(model.Point{X: 190, Y: 50}, natural, container)
	if bar.X <= 100 {
		t.Fatalf("expected point in letterbox to map above 100, got %+v", bar)
	}
}

func TestClamp(t *testing.T) {
	p := Clamp(model.Point{X: -5, Y: 105})
	if p.X != 0 || p.Y != 100 {
		t.Fatalf("expected (0,100), got %+v", p)
	}
}
