// Package visitor keeps per-visitor state: preferences, the mounted console
// views and window chrome.
package visitor

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fflap/portfolio/internal/background"
	"github.com/fflap/portfolio/internal/broadcast"
	"github.com/fflap/portfolio/internal/console"
	"github.com/fflap/portfolio/internal/dock"
	"github.com/fflap/portfolio/internal/logx"
	"github.com/fflap/portfolio/internal/prefs"
	"github.com/fflap/portfolio/internal/theme"
	"github.com/fflap/portfolio/internal/window"
)

// ConsoleWindowID is the id of the console window in the dock.
const ConsoleWindowID = "console"

// DefaultIdleTimeout drops visitors not seen for this long.
const DefaultIdleTimeout = 30 * time.Minute

// StoreFactory returns the preference store for a visitor.
type StoreFactory func(visitorID string) prefs.Store

// Visitor is the state of one browser (or SSH user).
type Visitor struct {
	ID         string
	Theme      *theme.Broadcaster
	Background *background.Broadcaster
	Windows    *window.Manager
	Dock       *dock.Dock

	interp *console.Interpreter
	chrome *broadcast.Value[dock.State]

	mu       sync.Mutex
	views    map[string]*View
	seq      uint64
	lastSeen time.Time
}

// Mount starts a view with a fresh console session and a new id.
func (v *Visitor) Mount() *View {
	return v.Attach(uuid.NewString())
}

// Attach returns the view with id, mounting a fresh one under that id when
// none exists.
func (v *Visitor) Attach(id string) *View {
	v.mu.Lock()
	defer v.mu.Unlock()
	if w, ok := v.views[id]; ok {
		v.seq++
		w.used = v.seq
		return w
	}
	if len(v.views) >= MaxViews {
		v.evictLocked()
	}
	v.seq++
	w := &View{ID: id, visitor: v, used: v.seq}
	v.views[id] = w
	return w
}

// View returns a mounted view.
func (v *Visitor) View(id string) (*View, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	w, ok := v.views[id]
	return w, ok
}

// Unmount drops a view and its scrollback.
func (v *Visitor) Unmount(id string) {
	v.mu.Lock()
	delete(v.views, id)
	v.mu.Unlock()
}

// Views returns the number of mounted views.
func (v *Visitor) Views() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.views)
}

// SubscribeDock returns a channel receiving the dock state after every
// change, including the indicator hiding on its own.
func (v *Visitor) SubscribeDock() (<-chan dock.State, func()) {
	return v.chrome.Subscribe()
}

// Watched reports whether anything still listens for the visitor's changes.
func (v *Visitor) Watched() bool {
	return v.Theme.Subscribers()+v.Background.Subscribers()+v.chrome.Subscribers() > 0
}

func (v *Visitor) markUsed(w *View) {
	v.mu.Lock()
	v.seq++
	w.used = v.seq
	v.mu.Unlock()
}

func (v *Visitor) evictLocked() {
	var oldest *View
	for _, w := range v.views {
		if oldest == nil || w.used < oldest.used {
			oldest = w
		}
	}
	if oldest != nil {
		delete(v.views, oldest.ID)
	}
}

func (v *Visitor) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

func (v *Visitor) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// Registry holds visitors by id.
type Registry struct {
	interp   *console.Interpreter
	stores   StoreFactory
	idle     time.Duration
	now      func() time.Time
	dockOpts []dock.Option

	mu       sync.Mutex
	visitors map[string]*Visitor
}

// Option configures a Registry.
type Option func(*Registry)

// WithIdleTimeout sets how long an unseen visitor is kept.
func WithIdleTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.idle = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithDockOptions passes options to every visitor's dock. A WithOnChange
// option is overridden; use Visitor.SubscribeDock instead.
func WithDockOptions(opts ...dock.Option) Option {
	return func(r *Registry) { r.dockOpts = append(r.dockOpts, opts...) }
}

// NewRegistry returns an empty registry. A nil factory keeps preferences
// in memory.
func NewRegistry(interp *console.Interpreter, stores StoreFactory, opts ...Option) *Registry {
	if stores == nil {
		stores = func(string) prefs.Store { return prefs.NewMemory() }
	}
	r := &Registry{
		interp:   interp,
		stores:   stores,
		idle:     DefaultIdleTimeout,
		now:      time.Now,
		visitors: make(map[string]*Visitor),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the visitor for id, creating it from stored preferences on
// first use.
func (r *Registry) Get(ctx context.Context, id string) *Visitor {
	now := r.now()
	r.mu.Lock()
	v, ok := r.visitors[id]
	if !ok {
		store := r.stores(id)
		v = &Visitor{
			ID:         id,
			Theme:      theme.NewBroadcaster(ctx, store),
			Background: background.NewBroadcaster(ctx, store),
			Windows:    window.NewManager(),
			interp:     r.interp,
			chrome:     broadcast.New(dock.State{}),
			views:      make(map[string]*View),
		}
		v.Dock = dock.New(append(slices.Clone(r.dockOpts), dock.WithOnChange(v.chrome.Set))...)
		v.Dock.Register(ConsoleWindowID, "~/portfolio")
		v.chrome.Set(v.Dock.State())
		r.visitors[id] = v
		logx.WithVisitor(ctx, id).Debug("visitor created", "theme", v.Theme.Get(), "background", v.Background.Label())
	}
	r.mu.Unlock()
	v.touch(now)
	return v
}

// Len returns the number of live visitors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}

// Sweep drops visitors idle for longer than the timeout and returns how
// many were removed. Visitors with an open subscription, such as a
// preference socket, are kept however long they have been idle.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, v := range r.visitors {
		if now.Sub(v.idleSince()) > r.idle && !v.Watched() {
			delete(r.visitors, id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle visitors until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	interval := r.idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	log := logx.Ctx(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(r.now()); n > 0 {
				log.Debug("visitors swept", "removed", n, "live", r.Len())
			}
		}
	}
}
