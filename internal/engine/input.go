// Package engine implements the pointer interaction core shared by the
// games: coordinate mapping, hit testing and progression state machines.
package engine

import "github.com/verte-zerg/playdeck/internal/model"

// PointerKind is the phase of a pointer interaction.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// Device identifies what produced a pointer event.
type Device int

const (
	DeviceMouse Device = iota
	DeviceTouch
)

// PointerEvent is a device-independent pointer event in screen units.
// Mouse events carry X/Y; touch events carry the active touches and the
// touches that changed (the only ones left on touch end).
type PointerEvent struct {
	Kind           PointerKind
	Device         Device
	X, Y           float64
	Touches        []model.Point
	ChangedTouches []model.Point
}

// MouseEvent builds a mouse pointer event.
func MouseEvent(kind PointerKind, x, y float64) PointerEvent {
	return PointerEvent{Kind: kind, Device: DeviceMouse, X: x, Y: y}
}

// TouchEvent builds a touch pointer event.
func TouchEvent(kind PointerKind, touches, changed []model.Point) PointerEvent {
	return PointerEvent{Kind: kind, Device: DeviceTouch, Touches: touches, ChangedTouches: changed}
}

// Point returns the screen position of the event: the first active touch,
// else the first changed touch, else the mouse position. A touch event with
// no touches has no position.
func (e PointerEvent) Point() (model.Point, bool) {
	if len(e.Touches) > 0 {
		return e.Touches[0], true
	}
	if len(e.ChangedTouches) > 0 {
		return e.ChangedTouches[0], true
	}
	if e.Device == DeviceMouse {
		return model.Point{X: e.X, Y: e.Y}, true
	}
	return model.Point{}, false
}
