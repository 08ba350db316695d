package visitor

import (
	"context"
	"testing"
	"time"

	"github.com/fflap/portfolio/internal/console"
	"github.com/fflap/portfolio/internal/dock"
	"github.com/fflap/portfolio/internal/prefs"
	"github.com/fflap/portfolio/internal/theme"
)

func newTestRegistry(stores StoreFactory, opts ...Option) *Registry {
	return NewRegistry(console.NewInterpreter(console.Deps{}), stores, opts...)
}

func TestGetReusesVisitor(t *testing.T) {
	r := newTestRegistry(nil)
	ctx := context.Background()
	a := r.Get(ctx, "a")
	if r.Get(ctx, "a") != a {
		t.Fatal("Get returned a different visitor")
	}
	if r.Get(ctx, "b") == a {
		t.Fatal("visitors share state")
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d", r.Len())
	}
}

func TestVisitorLoadsStoredPreferences(t *testing.T) {
	ctx := context.Background()
	stores := map[string]*prefs.Memory{"a": prefs.NewMemory()}
	_ = stores["a"].Set(ctx, prefs.KeyTheme, "orange")
	_ = stores["a"].Set(ctx, prefs.KeyBackground, "true")
	r := newTestRegistry(func(id string) prefs.Store {
		if s, ok := stores[id]; ok {
			return s
		}
		return prefs.NewMemory()
	})

	v := r.Get(ctx, "a")
	if v.Theme.Get() != theme.Orange {
		t.Fatalf("theme = %q", v.Theme.Get())
	}
	if !v.Background.Enabled() {
		t.Fatal("expected 3d background")
	}
	if w := v.Dock.Windows(); len(w) != 1 || w[0].ID != ConsoleWindowID {
		t.Fatalf("dock windows = %+v", w)
	}
}

func TestMountStartsEmptyView(t *testing.T) {
	ctx := context.Background()
	v := newTestRegistry(nil).Get(ctx, "a")
	a := v.Mount()
	a.Submit(ctx, "help")
	if len(a.Scrollback()) != 2 {
		t.Fatalf("scrollback = %+v", a.Scrollback())
	}
	b := v.Mount()
	if b.ID == a.ID {
		t.Fatal("views share an id")
	}
	if len(b.Scrollback()) != 0 {
		t.Fatal("new view inherited scrollback")
	}
}

func TestViewsKeepTheirOwnScrollback(t *testing.T) {
	ctx := context.Background()
	v := newTestRegistry(nil).Get(ctx, "a")
	tabA := v.Mount()
	tabA.Submit(ctx, "whoami")
	tabB := v.Mount()
	tabB.Submit(ctx, "skills")
	_, entries := tabA.Submit(ctx, "help")

	if len(entries) != 4 || entries[0].Text != "whoami" || entries[2].Text != "help" {
		t.Fatalf("tab A scrollback = %+v", entries)
	}
	if got := tabB.Scrollback(); len(got) != 2 || got[0].Text != "skills" {
		t.Fatalf("tab B scrollback = %+v", got)
	}
	if v.Attach(tabA.ID) != tabA {
		t.Fatal("Attach did not return the mounted view")
	}
}

func TestAttachUnknownIDMountsFreshView(t *testing.T) {
	ctx := context.Background()
	v := newTestRegistry(nil).Get(ctx, "a")
	w := v.Attach("gone")
	if w.ID != "gone" || len(w.Scrollback()) != 0 {
		t.Fatalf("view = %+v", w)
	}
	if _, ok := v.View("gone"); !ok {
		t.Fatal("attached view not registered")
	}
	v.Unmount("gone")
	if _, ok := v.View("gone"); ok {
		t.Fatal("Unmount kept the view")
	}
}

func TestMountEvictsLeastRecentlyUsedView(t *testing.T) {
	ctx := context.Background()
	v := newTestRegistry(nil).Get(ctx, "a")
	first := v.Mount()
	second := v.Mount()
	for i := 2; i < MaxViews; i++ {
		v.Mount()
	}
	first.Submit(ctx, "help")
	v.Mount()

	if v.Views() != MaxViews {
		t.Fatalf("Views() = %d, want %d", v.Views(), MaxViews)
	}
	if _, ok := v.View(first.ID); !ok {
		t.Fatal("recently used view was evicted")
	}
	if _, ok := v.View(second.ID); ok {
		t.Fatal("least recently used view survived")
	}
}

func TestSubmitSharesThemeWithVisitor(t *testing.T) {
	ctx := context.Background()
	v := newTestRegistry(nil).Get(ctx, "a")
	ch, cancel := v.Theme.Subscribe()
	defer cancel()

	_, entries := v.Mount().Submit(ctx, "theme green")
	if entries[len(entries)-1].Text != "Theme switched to green" {
		t.Fatalf("entries = %+v", entries)
	}
	if got := <-ch; got != theme.Green {
		t.Fatalf("subscriber got %q", got)
	}
}

func TestRestartStartsFreshSession(t *testing.T) {
	ctx := context.Background()
	w := newTestRegistry(nil).Get(ctx, "a").Mount()
	w.Submit(ctx, "help")
	res, _ := w.Submit(ctx, "restart")
	if !res.Reload {
		t.Fatalf("result = %+v", res)
	}
	if len(w.Scrollback()) != 0 {
		t.Fatal("restart should leave a fresh session behind")
	}
	res, entries := w.Submit(ctx, "whoami")
	if res.Reload || len(entries) != 2 {
		t.Fatalf("new session not usable: %+v %+v", res, entries)
	}
}

type manualTimers struct {
	pending []func()
}

type manualTimer struct{}

func (manualTimer) Stop() bool { return true }

func (m *manualTimers) AfterFunc(_ time.Duration, f func()) dock.Timer {
	m.pending = append(m.pending, f)
	return manualTimer{}
}

func (m *manualTimers) fire() {
	pending := m.pending
	m.pending = nil
	for _, f := range pending {
		f()
	}
}

func TestDockChangesArePublished(t *testing.T) {
	timers := &manualTimers{}
	r := newTestRegistry(nil, WithDockOptions(dock.WithAfterFunc(timers.AfterFunc)))
	v := r.Get(context.Background(), "a")
	states, cancel := v.SubscribeDock()
	defer cancel()

	v.Dock.Minimize(ConsoleWindowID)
	if st := <-states; !st.Visible || st.Minimized != 1 {
		t.Fatalf("after minimize = %+v", st)
	}
	timers.fire()
	if st := <-states; st.Visible {
		t.Fatalf("indicator should hide on its own: %+v", st)
	}
}

func TestSweepDropsIdleVisitors(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	r := newTestRegistry(nil, WithClock(clock), WithIdleTimeout(10*time.Minute))
	ctx := context.Background()
	r.Get(ctx, "old")
	now = now.Add(8 * time.Minute)
	r.Get(ctx, "new")

	if n := r.Sweep(now.Add(5 * time.Minute)); n != 1 {
		t.Fatalf("Sweep removed %d, want 1", n)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d", r.Len())
	}
}

func TestSweepKeepsWatchedVisitors(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRegistry(nil, WithClock(func() time.Time { return now }), WithIdleTimeout(time.Minute))
	ctx := context.Background()
	v := r.Get(ctx, "socket")
	themes, stopTheme := v.Theme.Subscribe()
	_, stopDock := v.SubscribeDock()

	if n := r.Sweep(now.Add(2 * time.Minute)); n != 0 {
		t.Fatalf("Sweep removed %d watched visitors", n)
	}
	if r.Get(ctx, "socket") != v {
		t.Fatal("watched visitor was replaced")
	}
	v.Mount().Submit(ctx, "theme green")
	if got := <-themes; got != theme.Green {
		t.Fatalf("subscriber got %q", got)
	}

	stopTheme()
	stopDock()
	if n := r.Sweep(now.Add(4 * time.Minute)); n != 1 {
		t.Fatalf("Sweep removed %d after unsubscribe, want 1", n)
	}
}
