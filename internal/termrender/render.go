// Package termrender turns console scrollback into terminal text.
package termrender

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"github.com/fflap/portfolio/internal/console"
	"github.com/fflap/portfolio/internal/theme"
)

// Prompt is shown before every command echo and input line.
const Prompt = "visitor@portfolio:~$ "

// Styles colours rendered output for one palette.
type Styles struct {
	Command  func(string) string
	Emphasis func(string) string
}

// NewStyles builds styles from p using the default lipgloss renderer.
func NewStyles(p theme.Palette) Styles {
	return StylesFor(lipgloss.DefaultRenderer(), p)
}

// StylesFor builds styles bound to r.
func StylesFor(r *lipgloss.Renderer, p theme.Palette) Styles {
	command := r.NewStyle().Foreground(lipgloss.Color(p.Primary)).Bold(true)
	emphasis := r.NewStyle().Foreground(lipgloss.Color(p.Primary))
	return Styles{
		Command:  func(s string) string { return command.Render(s) },
		Emphasis: func(s string) string { return emphasis.Render(s) },
	}
}

// ANSIStyles writes 24-bit colour escapes directly, for remote terminals
// whose capabilities cannot be probed from this process.
func ANSIStyles(p theme.Palette) Styles {
	fg := truecolor(p.Primary)
	return Styles{
		Command:  func(s string) string { return ansiBold + fg + s + ansiReset },
		Emphasis: func(s string) string { return fg + s + ansiReset },
	}
}

// Plain renders without colour.
func Plain() Styles {
	same := func(s string) string { return s }
	return Styles{Command: same, Emphasis: same}
}

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
)

// truecolor returns the foreground escape for a #rrggbb colour, or "" when
// hex is malformed.
func truecolor(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ""
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", v>>16&0xff, v>>8&0xff, v&0xff)
}

// Render returns e as terminal text coloured with p.
func Render(e console.Entry, p theme.Palette) string {
	return NewStyles(p).Render(e)
}

// Render returns e as terminal text.
func (s Styles) Render(e console.Entry) string {
	switch e.Kind {
	case console.KindCommand:
		return s.Command("$ " + e.Text)
	case console.KindHTML:
		return convert(e.Text, s.Emphasis)
	default:
		return e.Text
	}
}

// RenderAll renders entries one per line.
func (s Styles) RenderAll(entries []console.Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = s.Render(e)
	}
	return strings.Join(lines, "\n")
}

// HTMLToText strips markup from s, showing links as "text (href)" when the
// text is not the address itself.
func HTMLToText(s string) string {
	return convert(s, nil)
}

type frame struct {
	tag  string
	emph bool
	href string
	buf  strings.Builder
}

func convert(s string, emph func(string) string) string {
	root := &frame{}
	stack := []*frame{root}
	top := func() *frame { return stack[len(stack)-1] }

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return s
			}
			// Unclosed tags keep their content.
			for len(stack) > 1 {
				closeFrame(&stack, emph)
			}
			return root.buf.String()
		case html.TextToken:
			top().buf.WriteString(string(z.Text()))
		case html.SelfClosingTagToken, html.StartTagToken:
			tok := z.Token()
			switch tok.Data {
			case "br":
				top().buf.WriteByte('\n')
			case "a", "span", "strong", "b", "em":
				if tt == html.SelfClosingTagToken {
					continue
				}
				f := &frame{tag: tok.Data}
				for _, attr := range tok.Attr {
					switch attr.Key {
					case "href":
						f.href = attr.Val
					case "class":
						f.emph = strings.Contains(attr.Val, "text-theme")
					}
				}
				if tok.Data == "strong" || tok.Data == "b" {
					f.emph = true
				}
				stack = append(stack, f)
			}
		case html.EndTagToken:
			tok := z.Token()
			if len(stack) > 1 && top().tag == tok.Data {
				closeFrame(&stack, emph)
			}
		}
	}
}

func closeFrame(stack *[]*frame, emph func(string) string) {
	s := *stack
	f := s[len(s)-1]
	*stack = s[:len(s)-1]
	parent := (*stack)[len(*stack)-1]

	text := f.buf.String()
	if f.tag == "a" && f.href != "" && strings.TrimPrefix(f.href, "mailto:") != text {
		text += " (" + f.href + ")"
	}
	if (f.emph || f.tag == "a") && emph != nil {
		text = emph(text)
	}
	parent.buf.WriteString(text)
}
