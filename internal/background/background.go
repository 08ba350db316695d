// Package background tracks whether a visitor sees the 3D background or the
// simplified one.
package background

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fflap/portfolio/internal/broadcast"
	"github.com/fflap/portfolio/internal/prefs"
	"pkt.systems/pslog"
)

// Mode labels accepted by the console.
const (
	Mode3D     = "3d"
	ModeSimple = "simple"
)

// ParseMode maps a mode label to the enabled flag.
func ParseMode(s string) (enabled bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case Mode3D:
		return true, true
	case ModeSimple:
		return false, true
	default:
		return false, false
	}
}

// Label returns the mode label for enabled.
func Label(enabled bool) string {
	if enabled {
		return Mode3D
	}
	return ModeSimple
}

// Broadcaster owns one visitor's background mode.
type Broadcaster struct {
	value *broadcast.Value[bool]
	store prefs.Store
}

// NewBroadcaster resolves the initial mode from store; only a stored "true"
// enables the 3D background.
func NewBroadcaster(ctx context.Context, store prefs.Store) *Broadcaster {
	enabled := false
	if store != nil {
		raw, ok, err := store.Get(ctx, prefs.KeyBackground)
		switch {
		case err != nil:
			pslog.Ctx(ctx).Warn("background preference unreadable", "err", err)
		case ok:
			enabled = raw == "true"
		}
	}
	return &Broadcaster{value: broadcast.New(enabled), store: store}
}

// Enabled reports whether the 3D background is selected.
func (b *Broadcaster) Enabled() bool {
	return b.value.Get()
}

// Label returns "3d" or "simple".
func (b *Broadcaster) Label() string {
	return Label(b.Enabled())
}

// Set selects the mode, notifies subscribers and persists it.
func (b *Broadcaster) Set(ctx context.Context, enabled bool) error {
	b.value.Set(enabled)
	if b.store == nil {
		return nil
	}
	if err := b.store.Set(ctx, prefs.KeyBackground, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("persisting background mode: %w", err)
	}
	return nil
}

// Toggle flips the current mode.
func (b *Broadcaster) Toggle(ctx context.Context) error {
	return b.Set(ctx, !b.Enabled())
}

// Subscribe returns a channel receiving every mode set after the call.
func (b *Broadcaster) Subscribe() (<-chan bool, func()) {
	return b.value.Subscribe()
}

// Subscribers reports how many subscriptions are open.
func (b *Broadcaster) Subscribers() int {
	return b.value.Subscribers()
}
