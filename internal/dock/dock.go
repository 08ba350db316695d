// Package dock tracks which console windows exist and whether they are
// open, minimised or closed, and when the dock itself is shown.
package dock

import (
	"sync"
	"time"
)

// IndicatorDuration is how long the dock stays up after a window is
// minimised.
const IndicatorDuration = 2500 * time.Millisecond

// Timer is the part of *time.Timer the dock needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Window is one dock entry.
type Window struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Minimized bool   `json:"minimized"`
	Closed    bool   `json:"closed"`
	Open      bool   `json:"open"`
}

// Active reports whether the window is open and not minimised.
func (w Window) Active() bool {
	return w.Open && !w.Minimized
}

// State is a snapshot of the dock.
type State struct {
	Visible   bool     `json:"visible"`
	Hidden    bool     `json:"hidden"`
	Minimized int      `json:"minimized"`
	Windows   []Window `json:"windows"`
}

// Dock is safe for concurrent use.
type Dock struct {
	mu        sync.Mutex
	afterFunc AfterFunc
	windows   map[string]*Window
	order     []string
	hovered   bool
	indicator bool
	prevMin   int
	timer     Timer
	onChange  func(State)
}

// Option configures a Dock.
type Option func(*Dock)

// WithAfterFunc replaces the timer source.
func WithAfterFunc(fn AfterFunc) Option {
	return func(d *Dock) { d.afterFunc = fn }
}

// WithOnChange registers a callback run after every visibility change.
func WithOnChange(fn func(State)) Option {
	return func(d *Dock) { d.onChange = fn }
}

// New returns an empty dock.
func New(opts ...Option) *Dock {
	d := &Dock{
		afterFunc: realAfterFunc,
		windows:   make(map[string]*Window),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds a window. Registering an existing id keeps its state.
func (d *Dock) Register(id, title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.windows[id]; ok {
		return
	}
	d.windows[id] = &Window{ID: id, Title: title, Open: true}
	d.order = append(d.order, id)
}

// Minimize sends a window to the dock.
func (d *Dock) Minimize(id string) {
	d.update(id, func(w *Window) { w.Minimized = true })
}

// Restore brings a window back from the dock or from closed.
func (d *Dock) Restore(id string) {
	d.update(id, func(w *Window) {
		w.Minimized = false
		w.Closed = false
		w.Open = true
	})
}

// Close removes a window from view; it stays registered.
func (d *Dock) Close(id string) {
	d.update(id, func(w *Window) {
		w.Closed = true
		w.Open = false
	})
}

// Open reopens a closed window.
func (d *Dock) Open(id string) {
	d.update(id, func(w *Window) {
		w.Closed = false
		w.Minimized = false
		w.Open = true
	})
}

// Toggle restores id when it is minimised and minimises it otherwise.
func (d *Dock) Toggle(id string) {
	d.update(id, func(w *Window) {
		if w.Minimized {
			w.Minimized = false
			w.Closed = false
			w.Open = true
			return
		}
		w.Minimized = true
	})
}

// SetHovered records whether the pointer is over the dock.
func (d *Dock) SetHovered(v bool) {
	d.mu.Lock()
	d.hovered = v
	st := d.stateLocked()
	d.mu.Unlock()
	d.notify(st)
}

func (d *Dock) update(id string, fn func(*Window)) {
	d.mu.Lock()
	w, ok := d.windows[id]
	if !ok {
		d.mu.Unlock()
		return
	}
	fn(w)
	d.reconcileLocked()
	st := d.stateLocked()
	d.mu.Unlock()
	d.notify(st)
}

// reconcileLocked shows the indicator when more windows are minimised than
// before and arms the auto-hide timer.
func (d *Dock) reconcileLocked() {
	count := d.minimizedLocked()
	if count > d.prevMin {
		d.indicator = true
		if d.timer != nil {
			d.timer.Stop()
		}
		d.timer = d.afterFunc(IndicatorDuration, d.hideIndicator)
	}
	d.prevMin = count
}

func (d *Dock) hideIndicator() {
	d.mu.Lock()
	d.indicator = false
	d.timer = nil
	st := d.stateLocked()
	d.mu.Unlock()
	d.notify(st)
}

func (d *Dock) notify(st State) {
	if d.onChange != nil {
		d.onChange(st)
	}
}

func (d *Dock) minimizedLocked() int {
	n := 0
	for _, w := range d.windows {
		if !w.Closed && w.Minimized {
			n++
		}
	}
	return n
}

// MinimizedCount returns the number of minimised, non-closed windows.
func (d *Dock) MinimizedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.minimizedLocked()
}

// Windows returns the non-closed windows in registration order.
func (d *Dock) Windows() []Window {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.windowsLocked()
}

func (d *Dock) windowsLocked() []Window {
	out := make([]Window, 0, len(d.order))
	for _, id := range d.order {
		if w := d.windows[id]; !w.Closed {
			out = append(out, *w)
		}
	}
	return out
}

// Visible reports whether the dock is on screen.
func (d *Dock) Visible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stateLocked().Visible
}

// State returns a snapshot of the dock.
func (d *Dock) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stateLocked()
}

func (d *Dock) stateLocked() State {
	windows := d.windowsLocked()
	hidden := len(windows) == 0
	return State{
		Visible:   !hidden && (d.hovered || d.indicator),
		Hidden:    hidden,
		Minimized: d.minimizedLocked(),
		Windows:   windows,
	}
}
