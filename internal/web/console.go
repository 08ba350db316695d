package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fflap/portfolio/internal/visitor"
)

// ViewField carries the console view id in the console form and query.
const ViewField = "view"

// currentView resolves the console view a request belongs to. A view the
// server no longer knows, after a restart or an eviction, starts empty.
func currentView(c *gin.Context) (*visitor.View, bool) {
	id := c.Query(ViewField)
	if id == "" {
		id = c.PostForm(ViewField)
	}
	if uuid.Validate(id) != nil {
		c.String(http.StatusBadRequest, "missing console view")
		return nil, false
	}
	return currentVisitor(c).Attach(id), true
}

func (s *Server) handleConsole(c *gin.Context) {
	view, ok := currentView(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "console.html", gin.H{"entries": view.Scrollback()})
}

// handleSubmit runs one console line. A restart asks HTMX to reload the
// page so the next view mounts a fresh session.
func (s *Server) handleSubmit(c *gin.Context) {
	view, ok := currentView(c)
	if !ok {
		return
	}
	res, entries := view.Submit(c.Request.Context(), c.PostForm("command"))
	if res.Reload {
		currentVisitor(c).Unmount(view.ID)
		c.Header("HX-Refresh", "true")
	}
	c.HTML(http.StatusOK, "console.html", gin.H{"entries": entries})
}
