package console

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in        string
		name      string
		args      int
		remainder string
		ok        bool
	}{
		{"", "", 0, "", false},
		{"   ", "", 0, "", false},
		{"help", "help", 0, "", true},
		{"  THEME Green ", "theme", 1, "green", true},
		{"show university of alberta", "show", 3, "university of alberta", true},
		{"theme  green", "theme", 1, "green", true},
		{"show\tacme corp", "show", 2, "acme corp", true},
		{"show \t acme", "show", 1, "acme", true},
	}
	for _, tt := range tests {
		line, ok := Parse(tt.in)
		if ok != tt.ok {
			t.Fatalf("Parse(%q) ok = %v", tt.in, ok)
		}
		if !ok {
			continue
		}
		if line.Name != tt.name || len(line.Args) != tt.args || line.Remainder != tt.remainder {
			t.Errorf("Parse(%q) = %+v", tt.in, line)
		}
	}
}
