package visitor

import (
	"context"
	"sync"

	"github.com/fflap/portfolio/internal/console"
	"github.com/fflap/portfolio/internal/logx"
)

// MaxViews bounds the mounted views kept per visitor. Mounting past it
// drops the least recently used view.
const MaxViews = 16

// View is one mounted console: a browser tab, an SSH connection or a local
// terminal. Views of a visitor share its preferences and chrome but each
// owns its scrollback.
type View struct {
	ID string

	visitor *Visitor

	mu      sync.Mutex
	session *console.Session
	used    uint64
}

// Session returns the view's console session, starting a new one after a
// restart.
func (w *View) Session() *console.Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sessionLocked()
}

// Scrollback returns a copy of the view's entries.
func (w *View) Scrollback() []console.Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sessionLocked().Scrollback()
}

// Submit runs line on the view's console and returns the scrollback after
// it. Submissions are serialised per view. A restart drops the session so
// the next use starts clean.
func (w *View) Submit(ctx context.Context, line string) (console.Result, []console.Entry) {
	ctx = logx.ContextWithVisitor(ctx, w.visitor.ID)
	w.visitor.markUsed(w)
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.sessionLocked()
	res := w.visitor.interp.Submit(ctx, s, line)
	entries := s.Scrollback()
	if res.Reload {
		w.session = nil
	}
	return res, entries
}

func (w *View) sessionLocked() *console.Session {
	if w.session == nil {
		v := w.visitor
		w.session = v.interp.NewSession(v.ID, v.Theme, v.Background)
	}
	return w.session
}
