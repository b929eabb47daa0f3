// Package engine implements the pointer interaction core shared by the
// games: coordinate mapping, hit testing and progression state machines.
package engine

import "errors"

// Rejections. None of them change progress state.
var (
	ErrWrongStart      = errors.New("wrong start dot")
	ErrWrongConnection = errors.New("wrong connection")
	ErrNoTarget        = errors.New("no target in range")
	ErrNotDrawing      = errors.New("not drawing")
	ErrCompleted       = errors.New("already completed")
	ErrWrongPlacement  = errors.New("wrong placement")
	ErrUnknownLabel    = errors.New("unknown label")
)
