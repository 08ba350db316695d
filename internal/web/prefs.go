package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"pkt.systems/pslog"

	"github.com/fflap/portfolio/internal/background"
	"github.com/fflap/portfolio/internal/dock"
	"github.com/fflap/portfolio/internal/theme"
	"github.com/fflap/portfolio/internal/visitor"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// PrefsResponse is the body of GET /prefs.
type PrefsResponse struct {
	Theme      theme.Name       `json:"theme"`
	Background string           `json:"background"`
	Variables  []theme.Variable `json:"variables"`
}

// PrefsMessage is pushed over /ws/prefs whenever a preference or the dock
// changes.
type PrefsMessage struct {
	Type       string           `json:"type"`
	Theme      theme.Name       `json:"theme,omitempty"`
	Variables  []theme.Variable `json:"variables,omitempty"`
	Background string           `json:"background,omitempty"`
	Dock       *dock.State      `json:"dock,omitempty"`
}

func themeMessage(n theme.Name) PrefsMessage {
	return PrefsMessage{Type: "theme", Theme: n, Variables: theme.Variables(n)}
}

func backgroundMessage(enabled bool) PrefsMessage {
	return PrefsMessage{Type: "background", Background: background.Label(enabled)}
}

func dockMessage(st dock.State) PrefsMessage {
	return PrefsMessage{Type: "dock", Dock: &st}
}

func prefsResponse(v *visitor.Visitor) PrefsResponse {
	th := v.Theme.Get()
	return PrefsResponse{
		Theme:      th,
		Background: v.Background.Label(),
		Variables:  theme.Variables(th),
	}
}

func (s *Server) handlePrefs(c *gin.Context) {
	c.JSON(http.StatusOK, prefsResponse(currentVisitor(c)))
}

// handleBackgroundToggle flips the background mode. Open sockets of the
// visitor receive the change like any other.
func (s *Server) handleBackgroundToggle(c *gin.Context) {
	v := currentVisitor(c)
	if err := v.Background.Toggle(c.Request.Context()); err != nil {
		pslog.Ctx(c.Request.Context()).Warn("background not saved", "err", err)
	}
	c.JSON(http.StatusOK, prefsResponse(v))
}

// handlePrefsSocket sends the current theme, background and dock, then
// every change made by any of the visitor's tabs or consoles. The dock also
// changes on its own when the minimise indicator times out.
func (s *Server) handlePrefsSocket(c *gin.Context) {
	v := currentVisitor(c)
	log := pslog.Ctx(c.Request.Context())
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	themes, stopTheme := v.Theme.Subscribe()
	defer stopTheme()
	modes, stopMode := v.Background.Subscribe()
	defer stopMode()
	docks, stopDock := v.SubscribeDock()
	defer stopDock()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go readUntilClosed(conn, cancel)

	send := func(msg PrefsMessage) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			log.Debug("websocket write", "err", err)
			return false
		}
		return true
	}

	if !send(themeMessage(v.Theme.Get())) ||
		!send(backgroundMessage(v.Background.Enabled())) ||
		!send(dockMessage(v.Dock.State())) {
		return
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-themes:
			if !ok || !send(themeMessage(n)) {
				return
			}
		case enabled, ok := <-modes:
			if !ok || !send(backgroundMessage(enabled)) {
				return
			}
		case st, ok := <-docks:
			if !ok || !send(dockMessage(st)) {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readUntilClosed drains client frames so pongs and close messages are
// handled, and cancels once the connection goes away.
func readUntilClosed(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
