// Package theme holds the site colour themes and the per-visitor theme
// broadcaster.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fflap/portfolio/internal/broadcast"
	"github.com/fflap/portfolio/internal/prefs"
	"pkt.systems/pslog"
)

// Name identifies a colour theme.
type Name string

const (
	Purple Name = "purple"
	Green  Name = "green"
	Orange Name = "orange"
	Blue   Name = "blue"
)

// Default is used when no valid preference is stored.
const Default = Purple

// ErrUnknownTheme is returned when setting a theme outside the supported set.
var ErrUnknownTheme = errors.New("unknown theme")

var names = []Name{Purple, Green, Orange, Blue}

// Palette is the set of colours a theme maps to.
type Palette struct {
	Primary    string
	Secondary  string
	Accent     string
	Background string
	Text       string
}

const (
	sharedBackground = "#181C22"
	sharedText       = "#EEEEEE"
)

var palettes = map[Name]Palette{
	Purple: {Primary: "#a855f7", Secondary: "#9333ea", Accent: "#c084fc", Background: sharedBackground, Text: sharedText},
	Green:  {Primary: "#4ade80", Secondary: "#22c55e", Accent: "#86efac", Background: sharedBackground, Text: sharedText},
	Orange: {Primary: "#fb923c", Secondary: "#f97316", Accent: "#fdba74", Background: sharedBackground, Text: sharedText},
	Blue:   {Primary: "#76ABAE", Secondary: "#5d9a9d", Accent: "#9fc5c7", Background: sharedBackground, Text: sharedText},
}

// Names returns the supported themes in display order.
func Names() []Name {
	out := make([]Name, len(names))
	copy(out, names)
	return out
}

// NameList joins the supported themes with ", ".
func NameList() string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}

// Parse returns the theme named by s, ignoring case and surrounding space.
func Parse(s string) (Name, bool) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := palettes[n]; !ok {
		return "", false
	}
	return n, true
}

// Valid reports whether n is a supported theme.
func (n Name) Valid() bool {
	_, ok := palettes[n]
	return ok
}

// PaletteFor returns the colours of n, or of Default when n is unknown.
func PaletteFor(n Name) Palette {
	if p, ok := palettes[n]; ok {
		return p
	}
	return palettes[Default]
}

// Variable is one CSS custom property.
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variables returns the CSS custom properties for n in a fixed order.
func Variables(n Name) []Variable {
	p := PaletteFor(n)
	return []Variable{
		{Name: "--primary-color", Value: p.Primary},
		{Name: "--secondary-color", Value: p.Secondary},
		{Name: "--accent-color", Value: p.Accent},
		{Name: "--bg-color", Value: p.Background},
		{Name: "--text-color", Value: p.Text},
	}
}

// CSS renders the custom properties for n as a :root rule.
func CSS(n Name) string {
	var b strings.Builder
	b.WriteString(":root{")
	for _, v := range Variables(n) {
		b.WriteString(v.Name)
		b.WriteByte(':')
		b.WriteString(v.Value)
		b.WriteByte(';')
	}
	b.WriteByte('}')
	return b.String()
}

// Broadcaster owns one visitor's theme. Readers see changes immediately and
// subscribers receive every new theme.
type Broadcaster struct {
	value *broadcast.Value[Name]
	store prefs.Store
}

// NewBroadcaster resolves the initial theme from store. Missing, unreadable
// or unrecognised values fall back to Default.
func NewBroadcaster(ctx context.Context, store prefs.Store) *Broadcaster {
	return &Broadcaster{
		value: broadcast.New(resolveInitial(ctx, store)),
		store: store,
	}
}

func resolveInitial(ctx context.Context, store prefs.Store) Name {
	if store == nil {
		return Default
	}
	raw, ok, err := store.Get(ctx, prefs.KeyTheme)
	if err != nil {
		pslog.Ctx(ctx).Warn("theme preference unreadable", "err", err)
		return Default
	}
	if !ok {
		return Default
	}
	// Stored values are matched exactly; only user input is normalised.
	if n := Name(raw); n.Valid() {
		return n
	}
	pslog.Ctx(ctx).Debug("theme preference ignored", "stored", raw)
	return Default
}

// Get returns the current theme.
func (b *Broadcaster) Get() Name {
	return b.value.Get()
}

// Palette returns the colours of the current theme.
func (b *Broadcaster) Palette() Palette {
	return PaletteFor(b.Get())
}

// Set switches to n, publishes it to subscribers and persists it. An
// unsupported name returns ErrUnknownTheme and changes nothing. When
// persisting fails the new theme still applies for the rest of the session.
func (b *Broadcaster) Set(ctx context.Context, n Name) error {
	if !n.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, n)
	}
	b.value.Set(n)
	if b.store == nil {
		return nil
	}
	if err := b.store.Set(ctx, prefs.KeyTheme, string(n)); err != nil {
		return fmt.Errorf("persisting theme: %w", err)
	}
	return nil
}

// Subscribe returns a channel receiving every theme set after the call.
func (b *Broadcaster) Subscribe() (<-chan Name, func()) {
	return b.value.Subscribe()
}

// Subscribers reports how many subscriptions are open.
func (b *Broadcaster) Subscribers() int {
	return b.value.Subscribers()
}
