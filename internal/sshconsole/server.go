// Package sshconsole serves the portfolio console over SSH.
package sshconsole

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"

	gliderssh "github.com/gliderlabs/ssh"
	"golang.org/x/term"
	"pkt.systems/pslog"

	"github.com/fflap/portfolio/internal/console"
	"github.com/fflap/portfolio/internal/logx"
	"github.com/fflap/portfolio/internal/termrender"
	"github.com/fflap/portfolio/internal/visitor"
)

// DefaultBanner greets every session.
const DefaultBanner = "Welcome to the portfolio console.\nType 'help' to see available commands, 'exit' to leave.\n\n"

const clearScreen = "\x1b[2J\x1b[H"

// Server exposes the console over SSH. Anyone may connect; the SSH user
// name only scopes preferences.
type Server struct {
	Addr        string
	HostKeyPath string
	Listener    net.Listener
	Registry    *visitor.Registry
	Interpreter *console.Interpreter
	Banner      string
}

// ListenAndServe starts the SSH server and shuts down on context cancellation.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.Registry == nil {
		return errors.New("visitor registry is required for SSH")
	}
	signer, err := EnsureHostKey(s.HostKeyPath)
	if err != nil {
		return err
	}
	logger := pslog.Ctx(ctx)

	server := &gliderssh.Server{
		Addr:    s.Addr,
		Handler: s.handleSession,
	}
	server.AddHostKey(signer)

	errCh := make(chan error, 1)
	go func() {
		if s.Listener != nil {
			logger.Info("ssh listening", "addr", s.Listener.Addr().String())
			errCh <- server.Serve(s.Listener)
			return
		}
		logger.Info("ssh listening", "addr", s.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		_ = server.Close()
		return nil
	case err := <-errCh:
		if errors.Is(err, gliderssh.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// VisitorID is the preference scope of an SSH user.
func VisitorID(user string) string {
	if strings.TrimSpace(user) == "" {
		user = "guest"
	}
	return "ssh:" + user
}

func (s *Server) handleSession(sess gliderssh.Session) {
	remote := sess.RemoteAddr().String()
	id := VisitorID(sess.User())
	log := pslog.Ctx(sess.Context()).With("remote", remote)
	ctx := logx.ContextWithVisitor(pslog.ContextWithLogger(sess.Context(), log), id)
	log = logx.Ctx(ctx)

	pty, winCh, ok := sess.Pty()
	if !ok {
		log.Info("ssh session rejected", "reason", "pty required")
		_, _ = io.WriteString(sess, "pty required\n")
		_ = sess.Exit(1)
		return
	}
	log.Info("ssh session opened", "term", pty.Term)

	v := s.Registry.Get(ctx, id)
	t := term.NewTerminal(sess, "")
	_ = t.SetSize(pty.Window.Width, pty.Window.Height)
	go func() {
		for win := range winCh {
			_ = t.SetSize(win.Width, win.Height)
		}
	}()

	err := s.Run(ctx, t, v)
	if err != nil {
		log.Warn("ssh session ended", "err", err)
		_ = sess.Exit(1)
		return
	}
	log.Info("ssh session closed")
	_ = sess.Exit(0)
}

// Run drives one console over t until the user leaves or input ends. The
// connection gets its own view; preferences stay shared with the visitor.
func (s *Server) Run(ctx context.Context, t *term.Terminal, v *visitor.Visitor) error {
	banner := s.Banner
	if banner == "" {
		banner = DefaultBanner
	}
	if s.Interpreter != nil {
		t.AutoCompleteCallback = func(line string, pos int, key rune) (string, int, bool) {
			return complete(s.Interpreter, line, pos, key)
		}
	}

	view := v.Mount()
	defer v.Unmount(view.ID)
	seen := 0
	styles := termrender.ANSIStyles(v.Theme.Palette())
	t.SetPrompt(styles.Emphasis(termrender.Prompt))
	if _, err := io.WriteString(t, banner); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := t.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "exit", "quit", "logout":
			_, _ = io.WriteString(t, "Goodbye.\n")
			return nil
		}

		res, entries := view.Submit(ctx, line)
		styles = termrender.ANSIStyles(v.Theme.Palette())
		t.SetPrompt(styles.Emphasis(termrender.Prompt))

		var out strings.Builder
		switch {
		case res.Reload:
			out.WriteString(clearScreen)
			out.WriteString(banner)
			seen = 0
		case res.Cleared:
			out.WriteString(clearScreen)
			seen = len(entries)
		default:
			for _, e := range entries[min(seen, len(entries)):] {
				// The terminal already shows what was typed.
				if e.Kind == console.KindCommand {
					continue
				}
				out.WriteString(styles.Render(e))
				out.WriteString("\n")
			}
			seen = len(entries)
		}
		if _, err := io.WriteString(t, out.String()); err != nil {
			return err
		}
	}
}

// complete expands a command name on tab, to the single match or to the
// longest prefix shared by every match.
func complete(in *console.Interpreter, line string, pos int, key rune) (string, int, bool) {
	if key != '\t' || pos != len(line) || strings.ContainsRune(line, ' ') {
		return "", 0, false
	}
	matches := in.Complete(line)
	switch len(matches) {
	case 0:
		return "", 0, false
	case 1:
		out := matches[0] + " "
		return out, len(out), true
	}
	prefix := matches[0]
	for _, m := range matches[1:] {
		for !strings.HasPrefix(m, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	if len(prefix) <= len(line) {
		return "", 0, false
	}
	return prefix, len(prefix), true
}
