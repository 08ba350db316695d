package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"pkt.systems/pslog"

	"github.com/fflap/portfolio/internal/db"
	"github.com/fflap/portfolio/internal/prefs"
)

// sqliteTime is how timestamps are written so SQLite date functions can
// compare them.
const sqliteTime = "2006-01-02 15:04:05"

// Retention is how long visitor rows are kept.
const Retention = 12 * 30 * 24 * time.Hour

// VisitorMetric is one tracked page view.
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Count is a value and how often it was seen.
type Count struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// Stats summarises site traffic and console use.
type Stats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalCommands    int64           `json:"total_commands"`
	Commands         []Count         `json:"commands"`
	Themes           []Count         `json:"themes"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

// Analytics records privacy-conscious visit and console statistics.
type Analytics struct {
	db   *db.DB
	salt string
	now  func() time.Time
	wg   sync.WaitGroup
}

// NewAnalytics returns analytics backed by d. IPs are hashed with a salt
// that lives only as long as the process.
func NewAnalytics(d *db.DB) *Analytics {
	return &Analytics{db: d, salt: uuid.NewString(), now: time.Now}
}

// hashIP is consistent per IP for the life of the process.
func (a *Analytics) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + a.salt))
	return hex.EncodeToString(sum[:])[:16]
}

var untrackedPrefixes = []string{"/static/", "/favicon", "/privacy", "/ws/"}

// Track records page views. Static files, the privacy page and sockets
// are skipped, as is any request carrying DNT: 1.
func (a *Analytics) Track() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != "GET" || c.GetHeader("DNT") == "1" || untracked(path) {
			c.Next()
			return
		}
		hashed := a.hashIP(c.ClientIP())
		ua := c.GetHeader("User-Agent")
		log := pslog.Ctx(c.Request.Context())
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := a.recordVisit(context.Background(), hashed, ua, path); err != nil {
				log.Warn("visit not recorded", "path", path, "err", err)
			}
		}()
		c.Next()
	}
}

func untracked(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Wait blocks until background writes finish.
func (a *Analytics) Wait() {
	a.wg.Wait()
}

func (a *Analytics) recordVisit(ctx context.Context, hashedIP, userAgent, path string) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, a.now().UTC().Format(sqliteTime))
	return err
}

// RecordCommand stores one console submission.
func (a *Analytics) RecordCommand(ctx context.Context, visitorID, command string) {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO console_commands (visitor_id, command, timestamp)
		VALUES (?, ?, ?)
	`, visitorID, command, a.now().UTC().Format(sqliteTime))
	if err != nil {
		pslog.Ctx(ctx).Warn("console command not recorded", "command", command, "err", err)
	}
}

// Purge removes visitor rows older than the retention window.
func (a *Analytics) Purge(ctx context.Context) (int64, error) {
	cutoff := a.now().Add(-Retention).UTC().Format(sqliteTime)
	result, err := a.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging visitors: %w", err)
	}
	n, _ := result.RowsAffected()
	if n > 0 {
		pslog.Ctx(ctx).Info("privacy cleanup", "removed", n)
	}
	return n, nil
}

// Stats collects the traffic summary.
func (a *Analytics) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := a.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Format(sqliteTime)
	week := now.Add(-7 * 24 * time.Hour).Format(sqliteTime)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{week}},
		{&stats.TotalCommands, `SELECT COUNT(*) FROM console_commands`, nil},
	}
	for _, q := range counts {
		if err := a.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("counting: %w", err)
		}
	}

	var err error
	stats.Commands, err = a.counts(ctx, `
		SELECT command, COUNT(*) AS n FROM console_commands
		GROUP BY command ORDER BY n DESC, command
	`)
	if err != nil {
		return nil, fmt.Errorf("command counts: %w", err)
	}
	stats.Themes, err = a.counts(ctx, `
		SELECT value, COUNT(*) AS n FROM preferences WHERE key = ?
		GROUP BY value ORDER BY n DESC, value
	`, prefs.KeyTheme)
	if err != nil {
		return nil, fmt.Errorf("theme counts: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT 50
	`)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("recent visitors: %w", err)
		}
		stats.RecentVisitors = append(stats.RecentVisitors, v)
	}
	return stats, rows.Err()
}

func (a *Analytics) counts(ctx context.Context, query string, args ...any) ([]Count, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Value, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
