// Package window tracks the geometry of the draggable, resizable console
// windows on the page.
package window

import "sync"

// Minimum frame size and the margins a maximised frame keeps from the
// viewport edges.
const (
	MinWidth  = 400
	MinHeight = 300

	maxMarginWidth  = 100
	maxMarginHeight = 150
	maxOffsetX      = 50
	maxOffsetY      = 75
)

// Point is a position in viewport pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width and height in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s Size) clamp() Size {
	if s.Width < MinWidth {
		s.Width = MinWidth
	}
	if s.Height < MinHeight {
		s.Height = MinHeight
	}
	return s
}

// Edge is the side or corner a resize starts from.
type Edge uint8

const (
	EdgeTop Edge = 1 << iota
	EdgeRight
	EdgeBottom
	EdgeLeft

	EdgeTopLeft     = EdgeTop | EdgeLeft
	EdgeTopRight    = EdgeTop | EdgeRight
	EdgeBottomLeft  = EdgeBottom | EdgeLeft
	EdgeBottomRight = EdgeBottom | EdgeRight
)

// ParseEdge maps names like "top", "bottomLeft" or "bottom-left" to an Edge.
func ParseEdge(s string) (Edge, bool) {
	switch s {
	case "top":
		return EdgeTop, true
	case "right":
		return EdgeRight, true
	case "bottom":
		return EdgeBottom, true
	case "left":
		return EdgeLeft, true
	case "topLeft", "top-left":
		return EdgeTopLeft, true
	case "topRight", "top-right":
		return EdgeTopRight, true
	case "bottomLeft", "bottom-left":
		return EdgeBottomLeft, true
	case "bottomRight", "bottom-right":
		return EdgeBottomRight, true
	default:
		return 0, false
	}
}

// movesOrigin reports whether resizing from e shifts the frame's position.
func (e Edge) movesOrigin() bool {
	return e&(EdgeTop|EdgeLeft) != 0
}

// State is a snapshot of a frame.
type State struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Size      Size   `json:"size"`
	Position  Point  `json:"position"`
	Maximized bool   `json:"maximized"`
	Minimized bool   `json:"minimized"`
}

// Frame is one movable, resizable window.
type Frame struct {
	mu        sync.Mutex
	id        string
	title     string
	size      Size
	position  Point
	maximized bool
	minimized bool
	prevSize  Size
	prevPos   Point
}

// NewFrame creates a frame sized to its measured content.
func NewFrame(id, title string, content Size) *Frame {
	return &Frame{id: id, title: title, size: content.clamp()}
}

// DragTo moves the frame.
func (f *Frame) DragTo(p Point) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.position = p
	return f.stateLocked()
}

// Resize applies a resize from edge. The size always updates; the position
// only follows when the top or left edge moved, so the opposite edge stays
// where it was.
func (f *Frame) Resize(edge Edge, size Size, pos Point) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.size = size.clamp()
	if edge.movesOrigin() {
		f.position = pos
	}
	return f.stateLocked()
}

// ToggleMaximize fills the viewport minus fixed margins, or restores the
// geometry the frame had before it was maximised.
func (f *Frame) ToggleMaximize(viewport Size) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.maximized {
		f.size = f.prevSize
		f.position = f.prevPos
		f.maximized = false
		return f.stateLocked()
	}
	f.prevSize = f.size
	f.prevPos = f.position
	f.size = Size{
		Width:  viewport.Width - maxMarginWidth,
		Height: viewport.Height - maxMarginHeight,
	}.clamp()
	f.position = Point{X: maxOffsetX, Y: maxOffsetY}
	f.maximized = true
	return f.stateLocked()
}

// HeaderDoubleClick toggles maximise, like the header's double-click.
func (f *Frame) HeaderDoubleClick(viewport Size) State {
	return f.ToggleMaximize(viewport)
}

// SetMinimized records whether the frame is minimised to the dock.
func (f *Frame) SetMinimized(v bool) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.minimized = v
	return f.stateLocked()
}

// State returns a snapshot of the frame.
func (f *Frame) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

func (f *Frame) stateLocked() State {
	return State{
		ID:        f.id,
		Title:     f.title,
		Size:      f.size,
		Position:  f.position,
		Maximized: f.maximized,
		Minimized: f.minimized,
	}
}

// Manager keeps one visitor's frames by id.
type Manager struct {
	mu     sync.Mutex
	frames map[string]*Frame
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{frames: make(map[string]*Frame)}
}

// Open returns the frame for id, creating it with the given content size
// when it does not exist yet.
func (m *Manager) Open(id, title string, content Size) *Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.frames[id]; ok {
		return f
	}
	f := NewFrame(id, title, content)
	m.frames[id] = f
	return f
}

// Frame returns the frame for id.
func (m *Manager) Frame(id string) (*Frame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.frames[id]
	return f, ok
}
