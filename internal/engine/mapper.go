// Package engine implements the pointer interaction core shared by the
// games: coordinate mapping, hit testing and progression state machines.
package engine

import "github.com/verte-zerg/playdeck/internal/model"

// ToNormalized maps a screen-space point into percentage space relative to
// ref's top-left corner and size. The result is not clamped; points outside
// ref map outside [0,100]. A degenerate ref maps every point to the origin.
func ToNormalized(screen model.Point, ref model.Rect) model.Point {
	if ref.Width <= 0 || ref.Height <= 0 {
		return model.Point{}
	}
	return model.Point{
		X: (screen.X - ref.Left) / ref.Width * 100,
		Y: (screen.Y - ref.Top) / ref.Height * 100,
	}
}

// FromNormalized maps a percentage-space point back to screen space.
func FromNormalized(p model.Point, ref model.Rect) model.Point {
	return model.Point{
		X: ref.Left + p.X/100*ref.Width,
		Y: ref.Top + p.Y/100*ref.Height,
	}
}

// AspectFit returns the sub-rectangle an image of the given natural size
// occupies when displayed with "contain" fit inside container: the largest
// centered rectangle with the image's aspect ratio. When the natural size
// is unknown the whole container is returned.
func AspectFit(natural model.Size, container model.Rect) model.Rect {
	if natural.Width <= 0 || natural.Height <= 0 || container.Width <= 0 || container.Height <= 0 {
		return container
	}
	imageAspect := natural.Width / natural.Height
	containerAspect := container.Width / container.Height

	var w, h, offX, offY float64
	if imageAspect > containerAspect {
		w = container.Width
		h = container.Width / imageAspect
		offY = (container.Height - h) / 2
	} else {
		h = container.Height
		w = container.Height * imageAspect
		offX = (container.Width - w) / 2
	}
	return model.Rect{
		Left:   container.Left + offX,
		Top:    container.Top + offY,
		Width:  w,
		Height: h,
	}
}

// ToNormalizedFit maps a screen-space point into percentage space relative
// to the letterboxed image bounds inside container.
func ToNormalizedFit(screen model.Point, natural model.Size, container model.Rect) model.Point {
	return ToNormalized(screen, AspectFit(natural, container))
}

// Clamp limits a percentage-space point to [0,100] on both axes.
func Clamp(p model.Point) model.Point {
	return model.Point{X: clamp(p.X, 0, 100), Y: clamp(p.Y, 0, 100)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
