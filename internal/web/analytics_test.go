package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fflap/portfolio/internal/db"
	"github.com/fflap/portfolio/internal/prefs"
)

func openAnalytics(t *testing.T, now time.Time) (*Analytics, *db.DB) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	a := NewAnalytics(database)
	a.now = func() time.Time { return now }
	return a, database
}

func TestHashIPConsistentAndOpaque(t *testing.T) {
	a, _ := openAnalytics(t, time.Now())
	h := a.hashIP("203.0.113.7")
	if h != a.hashIP("203.0.113.7") {
		t.Fatal("hash should be stable within a process")
	}
	if len(h) != 16 || h == "203.0.113.7" {
		t.Fatalf("unexpected hash %q", h)
	}
	other := NewAnalytics(nil)
	if other.hashIP("203.0.113.7") == h {
		t.Fatal("salt should differ between instances")
	}
}

func TestStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	a, database := openAnalytics(t, now)
	ctx := t.Context()

	visits := []struct {
		ip  string
		age time.Duration
	}{
		{"a", time.Hour},
		{"a", 2 * time.Hour},
		{"b", 3 * 24 * time.Hour},
		{"c", 30 * 24 * time.Hour},
	}
	for _, v := range visits {
		a.now = func() time.Time { return now.Add(-v.age) }
		if err := a.recordVisit(ctx, a.hashIP(v.ip), "test-agent", "/"); err != nil {
			t.Fatalf("recordVisit: %v", err)
		}
	}
	a.now = func() time.Time { return now }

	a.RecordCommand(ctx, "v1", "help")
	a.RecordCommand(ctx, "v1", "theme")
	a.RecordCommand(ctx, "v2", "help")
	_ = prefs.NewSQLite(database, "v1").Set(ctx, prefs.KeyTheme, "green")
	_ = prefs.NewSQLite(database, "v2").Set(ctx, prefs.KeyTheme, "green")
	_ = prefs.NewSQLite(database, "v3").Set(ctx, prefs.KeyTheme, "blue")

	stats, err := a.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVisitors != 4 || stats.UniqueVisitors != 3 {
		t.Errorf("visitors = %d total, %d unique", stats.TotalVisitors, stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 2 {
		t.Errorf("today = %d", stats.VisitorsToday)
	}
	if stats.VisitorsThisWeek != 3 {
		t.Errorf("this week = %d", stats.VisitorsThisWeek)
	}
	if stats.TotalCommands != 3 || len(stats.Commands) != 2 || stats.Commands[0] != (Count{"help", 2}) {
		t.Errorf("commands = %d %+v", stats.TotalCommands, stats.Commands)
	}
	if len(stats.Themes) != 2 || stats.Themes[0] != (Count{"green", 2}) {
		t.Errorf("themes = %+v", stats.Themes)
	}
	if len(stats.RecentVisitors) != 4 || !stats.RecentVisitors[0].Timestamp.Equal(now.Add(-time.Hour)) {
		t.Errorf("recent = %+v", stats.RecentVisitors)
	}
}

func TestPurgeRemovesOldVisits(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	a, _ := openAnalytics(t, now)
	ctx := t.Context()

	a.now = func() time.Time { return now.AddDate(-2, 0, 0) }
	_ = a.recordVisit(ctx, "old", "", "/")
	a.now = func() time.Time { return now }
	_ = a.recordVisit(ctx, "new", "", "/")

	n, err := a.Purge(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Purge = %d, %v", n, err)
	}
	stats, err := a.Stats(ctx)
	if err != nil || stats.TotalVisitors != 1 {
		t.Fatalf("stats after purge = %+v, %v", stats, err)
	}
}

func TestTrackSkipsDNTAndStatic(t *testing.T) {
	s := setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	s.do(t, req, nil)
	s.do(t, httptest.NewRequest(http.MethodGet, "/static/site.css", nil), nil)
	s.do(t, httptest.NewRequest(http.MethodGet, "/privacy", nil), nil)
	s.analytics.Wait()

	stats, err := s.analytics.Stats(t.Context())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVisitors != 0 {
		t.Fatalf("expected no tracked visits, got %d", stats.TotalVisitors)
	}

	s.do(t, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	s.analytics.Wait()
	stats, _ = s.analytics.Stats(t.Context())
	if stats.TotalVisitors != 1 || stats.RecentVisitors[0].Path != "/" {
		t.Fatalf("expected one tracked visit, got %+v", stats)
	}
}

func TestConsoleCommandsRecorded(t *testing.T) {
	s := setupTest(t)
	tb := s.open(t, nil)
	submit(t, s, tb, "help")
	submit(t, s, tb, "nonsense words")

	stats, err := s.analytics.Stats(t.Context())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	got := map[string]int64{}
	for _, c := range stats.Commands {
		got[c.Value] = c.Count
	}
	if got["help"] != 1 || got["unknown"] != 1 {
		t.Fatalf("commands = %+v", stats.Commands)
	}
}
