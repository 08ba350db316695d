package console

// Kind tells the renderer how to show a scrollback entry.
type Kind int

const (
	// KindCommand is the echo of a submitted line.
	KindCommand Kind = iota
	// KindResponse is plain text output.
	KindResponse
	// KindHTML is output containing markup that is already escaped.
	KindHTML
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindResponse:
		return "response"
	case KindHTML:
		return "html"
	default:
		return "unknown"
	}
}

// Entry is one line of scrollback.
type Entry struct {
	Kind Kind
	Text string
}

// Session is one mounted console: its scrollback and the line being typed.
// A Session is not safe for concurrent use; callers serialise submissions.
type Session struct {
	owner      string
	theme      ThemeState
	background BackgroundState
	scrollback []Entry
	pending    string
	ended      bool
}

// Owner returns the visitor id the session belongs to.
func (s *Session) Owner() string {
	return s.owner
}

// Input returns the pending input buffer.
func (s *Session) Input() string {
	return s.pending
}

// SetInput replaces the pending input buffer.
func (s *Session) SetInput(v string) {
	s.pending = v
}

// Scrollback returns a copy of the entries, oldest first.
func (s *Session) Scrollback() []Entry {
	out := make([]Entry, len(s.scrollback))
	copy(out, s.scrollback)
	return out
}

// Len returns the number of scrollback entries.
func (s *Session) Len() int {
	return len(s.scrollback)
}

// Ended reports whether the session was ended by restart.
func (s *Session) Ended() bool {
	return s.ended
}

func (s *Session) appendEntry(kind Kind, text string) {
	s.scrollback = append(s.scrollback, Entry{Kind: kind, Text: text})
}

func (s *Session) clear() {
	s.scrollback = nil
}
