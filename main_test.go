package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fflap/portfolio/internal/db"
	"github.com/fflap/portfolio/internal/web"
)

func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	t.Setenv("PORT", "")
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "portfolio.db")
	cfgPath := filepath.Join(dir, "portfolio.yml")
	content := "database:\n  path: " + dbPath + "\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath, dbPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootHasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "console", "stats", "version"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "portfolio ") {
		t.Fatalf("output = %q", out)
	}
}

func TestStatsCommandJSON(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)
	store, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	a := web.NewAnalytics(store)
	a.RecordCommand(context.Background(), "v1", "help")
	a.RecordCommand(context.Background(), "v1", "help")
	a.RecordCommand(context.Background(), "v2", "theme")
	store.Close()

	out, err := execute(t, "stats", "--config", cfgPath, "--json")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var stats web.Stats
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if stats.TotalCommands != 3 {
		t.Fatalf("total commands = %d", stats.TotalCommands)
	}
	if len(stats.Commands) == 0 || stats.Commands[0] != (web.Count{Value: "help", Count: 2}) {
		t.Fatalf("commands = %+v", stats.Commands)
	}
}

func TestStatsCommandRejectsInvalidConfig(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	t.Setenv("PORTFOLIO_HTTP_ADDR", "nonsense")
	if _, err := execute(t, "stats", "--config", cfgPath); err == nil {
		t.Fatal("expected invalid config error")
	}
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	err := writeStats(&buf, &web.Stats{
		TotalVisitors:  4,
		UniqueVisitors: 2,
		TotalCommands:  1,
		Commands:       []web.Count{{Value: "whoami", Count: 1}},
		RecentVisitors: []web.VisitorMetric{{
			HashedIP:  "abcdef0123456789",
			Path:      "/",
			Timestamp: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
		}},
	})
	if err != nil {
		t.Fatalf("writeStats: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Total visits", "4", "Commands", "whoami", "2026-01-02 03:04", "abcdef0123456789"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Themes") {
		t.Error("empty sections should be omitted")
	}
}
