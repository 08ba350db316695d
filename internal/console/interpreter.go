// Package console implements the site's terminal-styled command console.
package console

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/fflap/portfolio/internal/background"
	"github.com/fflap/portfolio/internal/catalog"
	"github.com/fflap/portfolio/internal/theme"
	"pkt.systems/pslog"
)

// ThemeState is the theme broadcaster as seen by the console.
type ThemeState interface {
	Get() theme.Name
	Set(ctx context.Context, n theme.Name) error
}

// BackgroundState is the background-mode broadcaster as seen by the console.
type BackgroundState interface {
	Enabled() bool
	Set(ctx context.Context, enabled bool) error
}

// Recorder receives the name of every handled command. Unrecognised input
// is reported as "unknown".
type Recorder interface {
	RecordCommand(ctx context.Context, visitorID, command string)
}

// Arity declares the arguments a command accepts.
type Arity int

const (
	// NoArgs commands match only when typed alone.
	NoArgs Arity = iota
	// OptionalArg commands use the first argument when present.
	OptionalArg
	// RequiredText commands take the rest of the line and need it non-empty.
	RequiredText
)

type handlerFunc func(ctx context.Context, s *Session, line Line) Result

type command struct {
	arity   Arity
	usage   string
	summary string
	run     handlerFunc
}

// Result tells the host what to do after a submission.
type Result struct {
	// Reload asks the host to reload the whole view. The session has ended.
	Reload bool
	// Cleared is set when the scrollback was wiped.
	Cleared bool
}

// Interpreter parses console input and dispatches it to commands. One
// Interpreter serves every session.
type Interpreter struct {
	catalog  *catalog.Portfolio
	recorder Recorder
	commands map[string]command
	order    []string
}

// Deps configures an Interpreter.
type Deps struct {
	Catalog  *catalog.Portfolio
	Recorder Recorder
}

// NewInterpreter returns an Interpreter with the built-in command set.
func NewInterpreter(deps Deps) *Interpreter {
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	in := &Interpreter{
		catalog:  deps.Catalog,
		recorder: deps.Recorder,
	}
	in.commands = map[string]command{
		"help":       {arity: NoArgs, usage: "help", summary: "Show this help message", run: in.help},
		"whoami":     {arity: NoArgs, usage: "whoami", summary: "Who is behind this site", run: in.whoami},
		"skills":     {arity: NoArgs, usage: "skills", summary: "Display technical skills", run: in.skills},
		"socials":    {arity: NoArgs, usage: "socials", summary: "List social media links", run: in.socials},
		"experience": {arity: NoArgs, usage: "experience", summary: "List companies I have worked at", run: in.experience},
		"show":       {arity: RequiredText, usage: "show <company>", summary: "Show details for a company", run: in.show},
		"theme":      {arity: OptionalArg, usage: "theme <name>", summary: "Change theme (" + theme.NameList() + ")", run: in.theme},
		"background": {arity: OptionalArg, usage: "background <3d|simple>", summary: "Switch background mode", run: in.background},
		"clear":      {arity: NoArgs, usage: "clear", summary: "Clear the terminal history", run: in.clear},
		"restart":    {arity: NoArgs, usage: "restart", summary: "Reload the page", run: in.restart},
	}
	in.order = []string{"help", "whoami", "skills", "socials", "experience", "show", "theme", "background", "clear", "restart"}
	return in
}

// Commands returns the command names in help order.
func (in *Interpreter) Commands() []string {
	out := make([]string, len(in.order))
	copy(out, in.order)
	return out
}

// NewSession returns an empty session for visitorID bound to the visitor's
// theme and background broadcasters.
func (in *Interpreter) NewSession(visitorID string, th ThemeState, bg BackgroundState) *Session {
	return &Session{owner: visitorID, theme: th, background: bg}
}

// SubmitPending submits the session's pending input.
func (in *Interpreter) SubmitPending(ctx context.Context, s *Session) Result {
	return in.Submit(ctx, s, s.Input())
}

// Submit runs one line of input against the session. Blank input is a
// no-op apart from clearing the pending buffer. Every other line is echoed
// and answered; nothing the user types makes Submit fail.
func (in *Interpreter) Submit(ctx context.Context, s *Session, raw string) Result {
	defer s.SetInput("")
	if s.ended {
		return Result{Reload: true}
	}
	line, ok := Parse(raw)
	if !ok {
		return Result{}
	}
	s.appendEntry(KindCommand, line.Raw)

	log := pslog.Ctx(ctx)
	cmd, found := in.lookup(line)
	if !found {
		log.Debug("console command unknown", "input_len", len(line.Raw))
		in.record(ctx, s, "unknown")
		s.appendEntry(KindResponse, fmt.Sprintf("Command not found: %s. Type 'help' for available commands.", line.Raw))
		return Result{}
	}
	log.Info("console command", "command", line.Name, "args", len(line.Args))
	in.record(ctx, s, line.Name)
	return cmd.run(ctx, s, line)
}

func (in *Interpreter) lookup(line Line) (command, bool) {
	cmd, ok := in.commands[line.Name]
	if !ok {
		return command{}, false
	}
	switch cmd.arity {
	case NoArgs:
		if len(line.Args) > 0 {
			return command{}, false
		}
	case RequiredText:
		if strings.TrimSpace(line.Remainder) == "" {
			return command{}, false
		}
	}
	return cmd, true
}

func (in *Interpreter) record(ctx context.Context, s *Session, name string) {
	if in.recorder != nil {
		in.recorder.RecordCommand(ctx, s.owner, name)
	}
}

func (in *Interpreter) help(_ context.Context, s *Session, _ Line) Result {
	width := 0
	for _, name := range in.order {
		if n := len(in.commands[name].usage); n > width {
			width = n
		}
	}
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, name := range in.order {
		cmd := in.commands[name]
		fmt.Fprintf(&b, "\n  - %-*s  %s", width, cmd.usage, cmd.summary)
	}
	s.appendEntry(KindResponse, b.String())
	return Result{}
}

func (in *Interpreter) whoami(_ context.Context, s *Session, _ Line) Result {
	p := in.catalog
	text := p.Name
	if p.Headline != "" {
		text += " - " + p.Headline
	}
	if p.Education.School != "" {
		text += fmt.Sprintf("\n%s, %s (%s)", p.Education.Degree, p.Education.School, p.Education.Period)
	}
	if p.Contact.Location != "" {
		text += "\nBased in " + p.Contact.Location
	}
	s.appendEntry(KindResponse, text)
	return Result{}
}

func (in *Interpreter) skills(_ context.Context, s *Session, _ Line) Result {
	lines := make([]string, 0, len(in.catalog.Skills))
	for _, cat := range in.catalog.Skills {
		escaped := make([]string, len(cat.Skills))
		for i, skill := range cat.Skills {
			escaped[i] = html.EscapeString(skill)
		}
		lines = append(lines, fmt.Sprintf(`<span class="text-theme font-bold">%s:</span> %s`,
			html.EscapeString(cat.Name), strings.Join(escaped, ", ")))
	}
	s.appendEntry(KindHTML, strings.Join(lines, "\n"))
	return Result{}
}

func (in *Interpreter) socials(_ context.Context, s *Session, _ Line) Result {
	c := in.catalog.Contact
	var lines []string
	if c.GitHub != "" {
		lines = append(lines, "GitHub: "+link(c.GitHub, c.GitHub, true))
	}
	if c.LinkedIn != "" {
		lines = append(lines, "LinkedIn: "+link(c.LinkedIn, c.LinkedIn, true))
	}
	if c.Email != "" {
		lines = append(lines, "Email: "+link("mailto:"+c.Email, c.Email, false))
	}
	s.appendEntry(KindHTML, strings.Join(lines, "\n"))
	return Result{}
}

func link(href, text string, external bool) string {
	target := ""
	if external {
		target = ` target="_blank" rel="noopener"`
	}
	return fmt.Sprintf(`<a href="%s"%s class="text-theme hover:underline">%s</a>`,
		html.EscapeString(href), target, html.EscapeString(text))
}

func (in *Interpreter) experience(_ context.Context, s *Session, _ Line) Result {
	if len(in.catalog.Experience) == 0 {
		s.appendEntry(KindResponse, "No experience listed yet.")
		return Result{}
	}
	lines := make([]string, 0, len(in.catalog.Experience)+1)
	for _, e := range in.catalog.Experience {
		lines = append(lines, fmt.Sprintf(`<span class="text-theme font-bold">%s</span> %s <span class="text-neutral-500">(%s)</span>`,
			html.EscapeString(e.Company), html.EscapeString(e.Role), html.EscapeString(e.Period)))
	}
	lines = append(lines, "Type 'show &lt;company&gt;' for details.")
	s.appendEntry(KindHTML, strings.Join(lines, "\n"))
	return Result{}
}

func (in *Interpreter) show(_ context.Context, s *Session, line Line) Result {
	query := strings.TrimSpace(line.Remainder)
	job, ok := in.catalog.FindExperience(query)
	if !ok {
		s.appendEntry(KindResponse, fmt.Sprintf("Company not found: \"%s\". Type 'experience' to see available companies.", query))
		return Result{}
	}
	bullets := make([]string, len(job.Description))
	for i, d := range job.Description {
		bullets[i] = "• " + html.EscapeString(d)
	}
	details := fmt.Sprintf("<span class=\"text-theme font-bold\">%s</span> at %s\n<span class=\"text-neutral-500\">%s | %s</span>\n\n%s",
		html.EscapeString(job.Role), html.EscapeString(job.Company),
		html.EscapeString(job.Period), html.EscapeString(job.Location),
		strings.Join(bullets, "\n"))
	s.appendEntry(KindHTML, details)
	return Result{}
}

func (in *Interpreter) theme(ctx context.Context, s *Session, line Line) Result {
	if len(line.Args) == 0 {
		s.appendEntry(KindResponse, fmt.Sprintf("Current theme: %s. Usage: theme <name>", currentTheme(s)))
		return Result{}
	}
	if s.theme == nil {
		s.appendEntry(KindResponse, themeUnavailable)
		return Result{}
	}
	name, ok := theme.Parse(line.Args[0])
	if !ok {
		s.appendEntry(KindResponse, "Invalid theme. Available themes: "+theme.NameList())
		return Result{}
	}
	if err := s.theme.Set(ctx, name); err != nil {
		pslog.Ctx(ctx).Warn("console theme not saved", "theme", name, "err", err)
	}
	s.appendEntry(KindResponse, fmt.Sprintf("Theme switched to %s", name))
	return Result{}
}

const (
	themeUnavailable      = "Theme switching is not available in this console."
	backgroundUnavailable = "Background switching is not available in this console."
)

func currentTheme(s *Session) theme.Name {
	if s.theme == nil {
		return theme.Default
	}
	return s.theme.Get()
}

func (in *Interpreter) background(ctx context.Context, s *Session, line Line) Result {
	if len(line.Args) == 0 {
		enabled := s.background != nil && s.background.Enabled()
		s.appendEntry(KindResponse, fmt.Sprintf("Current mode: %s. Usage: background <3d|simple>", background.Label(enabled)))
		return Result{}
	}
	if s.background == nil {
		s.appendEntry(KindResponse, backgroundUnavailable)
		return Result{}
	}
	enabled, ok := background.ParseMode(line.Args[0])
	if !ok {
		s.appendEntry(KindResponse, "Invalid mode. Usage: background <3d|simple>")
		return Result{}
	}
	if err := s.background.Set(ctx, enabled); err != nil {
		pslog.Ctx(ctx).Warn("console background not saved", "enabled", enabled, "err", err)
	}
	if enabled {
		s.appendEntry(KindResponse, "Background mode set to 3D")
	} else {
		s.appendEntry(KindResponse, "Background mode set to Simple")
	}
	return Result{}
}

func (in *Interpreter) clear(_ context.Context, s *Session, _ Line) Result {
	s.clear()
	return Result{Cleared: true}
}

func (in *Interpreter) restart(_ context.Context, s *Session, _ Line) Result {
	s.ended = true
	return Result{Reload: true}
}

// Complete returns the command names starting with prefix, sorted.
func (in *Interpreter) Complete(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var out []string
	for name := range in.commands {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
