package termrender

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/fflap/portfolio/internal/console"
	"github.com/fflap/portfolio/internal/theme"
)

func plainStyles() Styles {
	// A renderer on a buffer has no colour profile.
	return StylesFor(lipgloss.NewRenderer(&bytes.Buffer{}), theme.PaletteFor(theme.Purple))
}

func TestHTMLToText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"span", `<span class="text-theme font-bold">Languages:</span> Go, C`, "Languages: Go, C"},
		{"entities", "Type 'show &lt;company&gt;' for details.", "Type 'show <company>' for details."},
		{"link same text", `<a href="https://github.com/x" target="_blank">https://github.com/x</a>`, "https://github.com/x"},
		{"link other text", `<a href="https://example.com">site</a>`, "site (https://example.com)"},
		{"mailto", `Email: <a href="mailto:a@b.c">a@b.c</a>`, "Email: a@b.c"},
		{"br", "a<br>b", "a\nb"},
		{"unclosed", `<span class="text-theme">open`, "open"},
		{"newlines kept", "one\ntwo", "one\ntwo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTMLToText(tc.in); got != tc.want {
				t.Fatalf("HTMLToText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRenderKinds(t *testing.T) {
	s := plainStyles()
	if got := s.Render(console.Entry{Kind: console.KindCommand, Text: "help"}); got != "$ help" {
		t.Fatalf("command = %q", got)
	}
	if got := s.Render(console.Entry{Kind: console.KindResponse, Text: "<b>raw</b>"}); got != "<b>raw</b>" {
		t.Fatalf("response should be untouched, got %q", got)
	}
	got := s.Render(console.Entry{Kind: console.KindHTML, Text: `<span class="text-theme">Go</span> &amp; C`})
	if got != "Go & C" {
		t.Fatalf("html = %q", got)
	}
}

func TestRenderAllRendersEveryEntry(t *testing.T) {
	ctx := t.Context()
	in := console.NewInterpreter(console.Deps{})
	s := in.NewSession("t", nil, nil)
	in.Submit(ctx, s, "socials")

	out := plainStyles().RenderAll(s.Scrollback())
	if !strings.HasPrefix(out, "$ socials\n") {
		t.Fatalf("output = %q", out)
	}
	if strings.Contains(out, "<a") || !strings.Contains(out, "Email: ") {
		t.Fatalf("markup left in output: %q", out)
	}
}

func TestANSIStylesUsePalette(t *testing.T) {
	s := ANSIStyles(theme.PaletteFor(theme.Blue))
	got := s.Render(console.Entry{Kind: console.KindCommand, Text: "help"})
	want := "\x1b[1m\x1b[38;2;118;171;174m$ help\x1b[0m"
	if got != want {
		t.Fatalf("command = %q, want %q", got, want)
	}
	if Plain().Render(console.Entry{Kind: console.KindCommand, Text: "help"}) != "$ help" {
		t.Fatal("plain styles should not colour")
	}
}

func TestTruecolorRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "#fff", "#zzzzzz"} {
		if got := truecolor(in); got != "" {
			t.Errorf("truecolor(%q) = %q", in, got)
		}
	}
}
