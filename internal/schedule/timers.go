// Package schedule provides deterministic one-shot timers driven by the
// caller's clock.
package schedule

import (
	"sort"
	"time"
)

// Policy decides what a pending timer does while the set is paused.
type Policy int

const (
	// Running timers ignore pause.
	Running Policy = iota
	// Restart timers are suspended on pause and re-armed with their full
	// duration on resume.
	Restart
	// Preserve timers are suspended on pause and resume with the time that
	// was left.
	Preserve
)

// Fired is a timer that came due. Gen is the generation it was armed with;
// owners drop it when that no longer matches their current generation.
type Fired struct {
	Key string
	Gen uint64
	At  time.Time
}

type timer struct {
	gen       uint64
	deadline  time.Time
	duration  time.Duration
	remaining time.Duration
	suspended bool
}

// Timers is a keyed set of one-shot timers. It never starts goroutines:
// hosts ask NextWake when to call back and collect expired timers with Due.
type Timers struct {
	pending  map[string]*timer
	policies map[string]Policy
	paused   bool
}

// New returns an empty timer set.
func New() *Timers {
	return &Timers{
		pending:  map[string]*timer{},
		policies: map[string]Policy{},
	}
}

// SetPolicy sets the pause behaviour for key. Keys default to Running.
func (t *Timers) SetPolicy(key string, p Policy) {
	t.policies[key] = p
}

// Start arms key to fire d after now, replacing any pending timer with the
// same key.
func (t *Timers) Start(key string, gen uint64, now time.Time, d time.Duration) {
	if d < 0 {
		d = 0
	}
	tm := &timer{gen: gen, deadline: now.Add(d), duration: d}
	if t.paused && t.policies[key] != Running {
		tm.suspended = true
		tm.remaining = d
	}
	t.pending[key] = tm
}

// Cancel drops a pending timer.
func (t *Timers) Cancel(key string) {
	delete(t.pending, key)
}

// CancelAll drops every pending timer except the listed keys.
func (t *Timers) CancelAll(keep ...string) {
	for key := range t.pending {
		if contains(keep, key) {
			continue
		}
		delete(t.pending, key)
	}
}

// Pending reports whether key is armed.
func (t *Timers) Pending(key string) bool {
	_, ok := t.pending[key]
	return ok
}

// Remaining returns the time left on key at now. Suspended timers report
// the time they will have on resume.
func (t *Timers) Remaining(key string, now time.Time) (time.Duration, bool) {
	tm, ok := t.pending[key]
	if !ok {
		return 0, false
	}
	if tm.suspended {
		if t.policies[key] == Restart {
			return tm.duration, true
		}
		return tm.remaining, true
	}
	left := tm.deadline.Sub(now)
	if left < 0 {
		left = 0
	}
	return left, true
}

// Paused reports whether the set is paused.
func (t *Timers) Paused() bool { return t.paused }

// Pause suspends every pending timer whose policy is not Running.
func (t *Timers) Pause(now time.Time) {
	if t.paused {
		return
	}
	t.paused = true
	for key, tm := range t.pending {
		if t.policies[key] == Running {
			continue
		}
		tm.suspended = true
		tm.remaining = tm.deadline.Sub(now)
		if tm.remaining < 0 {
			tm.remaining = 0
		}
	}
}

// Resume re-arms suspended timers according to their policy.
func (t *Timers) Resume(now time.Time) {
	if !t.paused {
		return
	}
	t.paused = false
	for key, tm := range t.pending {
		if !tm.suspended {
			continue
		}
		tm.suspended = false
		if t.policies[key] == Restart {
			tm.deadline = now.Add(tm.duration)
		} else {
			tm.deadline = now.Add(tm.remaining)
		}
	}
}

// Due removes and returns the timers whose deadline is at or before now,
// earliest first.
func (t *Timers) Due(now time.Time) []Fired {
	var out []Fired
	for key, tm := range t.pending {
		if tm.suspended || tm.deadline.After(now) {
			continue
		}
		out = append(out, Fired{Key: key, Gen: tm.gen, At: tm.deadline})
		delete(t.pending, key)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].At.Equal(out[j].At) {
			return out[i].Key < out[j].Key
		}
		return out[i].At.Before(out[j].At)
	})
	return out
}

// NextWake returns the earliest deadline among running timers.
func (t *Timers) NextWake() (time.Time, bool) {
	var next time.Time
	found := false
	for _, tm := range t.pending {
		if tm.suspended {
			continue
		}
		if !found || tm.deadline.Before(next) {
			next = tm.deadline
			found = true
		}
	}
	return next, found
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
