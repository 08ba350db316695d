package window

import "testing"

func TestNewFrameClampsToMinimum(t *testing.T) {
	f := NewFrame("console", "~/portfolio", Size{Width: 120, Height: 900})
	st := f.State()
	if st.Size != (Size{Width: MinWidth, Height: 900}) {
		t.Fatalf("size = %+v", st.Size)
	}
	if st.Position != (Point{}) {
		t.Fatalf("position = %+v", st.Position)
	}
}

func TestResizeAnchorsOppositeEdge(t *testing.T) {
	tests := []struct {
		edge    Edge
		wantPos Point
	}{
		{EdgeRight, Point{X: 10, Y: 10}},
		{EdgeBottom, Point{X: 10, Y: 10}},
		{EdgeBottomRight, Point{X: 10, Y: 10}},
		{EdgeLeft, Point{X: -40, Y: 5}},
		{EdgeTop, Point{X: -40, Y: 5}},
		{EdgeTopLeft, Point{X: -40, Y: 5}},
		{EdgeBottomLeft, Point{X: -40, Y: 5}},
		{EdgeTopRight, Point{X: -40, Y: 5}},
	}
	for _, tt := range tests {
		f := NewFrame("c", "", Size{Width: 500, Height: 400})
		f.DragTo(Point{X: 10, Y: 10})
		st := f.Resize(tt.edge, Size{Width: 550, Height: 405}, Point{X: -40, Y: 5})
		if st.Size != (Size{Width: 550, Height: 405}) {
			t.Errorf("edge %v: size = %+v", tt.edge, st.Size)
		}
		if st.Position != tt.wantPos {
			t.Errorf("edge %v: position = %+v, want %+v", tt.edge, st.Position, tt.wantPos)
		}
	}
}

func TestResizeClamps(t *testing.T) {
	f := NewFrame("c", "", Size{Width: 500, Height: 400})
	st := f.Resize(EdgeRight, Size{Width: 10, Height: 10}, Point{})
	if st.Size != (Size{Width: MinWidth, Height: MinHeight}) {
		t.Fatalf("size = %+v", st.Size)
	}
}

func TestToggleMaximizeRestoresPriorGeometry(t *testing.T) {
	f := NewFrame("c", "", Size{Width: 500, Height: 400})
	f.DragTo(Point{X: 30, Y: 40})
	viewport := Size{Width: 1280, Height: 800}

	st := f.ToggleMaximize(viewport)
	if !st.Maximized {
		t.Fatal("expected maximized")
	}
	if st.Size != (Size{Width: 1180, Height: 650}) || st.Position != (Point{X: 50, Y: 75}) {
		t.Fatalf("maximized geometry = %+v at %+v", st.Size, st.Position)
	}

	st = f.HeaderDoubleClick(viewport)
	if st.Maximized {
		t.Fatal("expected restored")
	}
	if st.Size != (Size{Width: 500, Height: 400}) || st.Position != (Point{X: 30, Y: 40}) {
		t.Fatalf("restored geometry = %+v at %+v", st.Size, st.Position)
	}
}

func TestParseEdge(t *testing.T) {
	for in, want := range map[string]Edge{
		"top": EdgeTop, "bottomRight": EdgeBottomRight, "top-left": EdgeTopLeft, "left": EdgeLeft,
	} {
		got, ok := ParseEdge(in)
		if !ok || got != want {
			t.Errorf("ParseEdge(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseEdge("middle"); ok {
		t.Error("ParseEdge(middle) should fail")
	}
}

func TestManagerOpenIsIdempotent(t *testing.T) {
	m := NewManager()
	a := m.Open("console", "~/portfolio", Size{Width: 600, Height: 400})
	a.DragTo(Point{X: 1, Y: 2})
	b := m.Open("console", "other", Size{Width: 900, Height: 900})
	if a != b {
		t.Fatal("Open returned a different frame for the same id")
	}
	if got, ok := m.Frame("console"); !ok || got.State().Position != (Point{X: 1, Y: 2}) {
		t.Fatalf("Frame lookup = %+v, %v", got, ok)
	}
	if _, ok := m.Frame("missing"); ok {
		t.Fatal("unexpected frame")
	}
}
