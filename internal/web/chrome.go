package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fflap/portfolio/internal/dock"
	"github.com/fflap/portfolio/internal/window"
)

// windowRequest is the JSON body accepted by the window routes. Fields a
// route does not use are ignored.
type windowRequest struct {
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Edge     string      `json:"edge"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Viewport window.Size `json:"viewport"`
}

// ChromeResponse reports the frame and dock after a change.
type ChromeResponse struct {
	Frame *window.State `json:"frame,omitempty"`
	Dock  dock.State    `json:"dock"`
}

func (s *Server) handleWindow(c *gin.Context) {
	v := currentVisitor(c)
	id := c.Param("id")
	frame, ok := v.Windows.Frame(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown window"})
		return
	}

	var req windowRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var st window.State
	switch c.Param("action") {
	case "drag":
		st = frame.DragTo(window.Point{X: req.X, Y: req.Y})
	case "resize":
		edge, ok := window.ParseEdge(req.Edge)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown edge"})
			return
		}
		st = frame.Resize(edge, window.Size{Width: req.Width, Height: req.Height}, window.Point{X: req.X, Y: req.Y})
	case "maximize":
		st = frame.ToggleMaximize(req.Viewport)
	case "dblclick":
		st = frame.HeaderDoubleClick(req.Viewport)
	case "minimize":
		v.Dock.Minimize(id)
		st = frame.SetMinimized(true)
	case "restore":
		v.Dock.Restore(id)
		st = frame.SetMinimized(false)
	case "close":
		v.Dock.Close(id)
		st = frame.State()
	case "open":
		v.Dock.Open(id)
		st = frame.SetMinimized(false)
	case "toggle":
		v.Dock.Toggle(id)
		st = frame.SetMinimized(dockMinimized(v.Dock, id))
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown action"})
		return
	}
	c.JSON(http.StatusOK, ChromeResponse{Frame: &st, Dock: v.Dock.State()})
}

func dockMinimized(d *dock.Dock, id string) bool {
	for _, w := range d.Windows() {
		if w.ID == id {
			return w.Minimized
		}
	}
	return false
}

type hoverRequest struct {
	Hovered bool `json:"hovered" form:"hovered"`
}

func (s *Server) handleDockHover(c *gin.Context) {
	v := currentVisitor(c)
	var req hoverRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v.Dock.SetHovered(req.Hovered)
	c.JSON(http.StatusOK, ChromeResponse{Dock: v.Dock.State()})
}
