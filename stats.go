package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/fflap/portfolio/internal/config"
	"github.com/fflap/portfolio/internal/db"
	"github.com/fflap/portfolio/internal/web"
)

func newStatsCmd() *cobra.Command {
	var cfgPath string
	var asJSON bool
	var purge bool
	var recent int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show visitor and console statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			store, err := db.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			analytics := web.NewAnalytics(store)
			if purge {
				n, err := analytics.Purge(cmd.Context())
				if err != nil {
					return err
				}
				pslog.Ctx(cmd.Context()).Info("old visitor rows removed", "count", n)
			}

			stats, err := analytics.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if recent >= 0 && len(stats.RecentVisitors) > recent {
				stats.RecentVisitors = stats.RecentVisitors[:recent]
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			return writeStats(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultPath, "path to config file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	cmd.Flags().BoolVar(&purge, "purge", false, "remove visitor rows past the retention window first")
	cmd.Flags().IntVar(&recent, "recent", 10, "number of recent visits to list")
	return cmd
}

func writeStats(w io.Writer, s *web.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total visits\t%d\n", s.TotalVisitors)
	fmt.Fprintf(tw, "Unique visitors\t%d\n", s.UniqueVisitors)
	fmt.Fprintf(tw, "Visits today\t%d\n", s.VisitorsToday)
	fmt.Fprintf(tw, "Visits this week\t%d\n", s.VisitorsThisWeek)
	fmt.Fprintf(tw, "Console commands\t%d\n", s.TotalCommands)

	writeCounts(tw, "Commands", s.Commands)
	writeCounts(tw, "Themes", s.Themes)

	if len(s.RecentVisitors) > 0 {
		fmt.Fprintf(tw, "\nRecent visits\n")
		for _, v := range s.RecentVisitors {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", v.Timestamp.UTC().Format("2006-01-02 15:04"), v.HashedIP, v.Path)
		}
	}
	return tw.Flush()
}

func writeCounts(w io.Writer, title string, counts []web.Count) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, c := range counts {
		fmt.Fprintf(w, "  %s\t%d\n", c.Value, c.Count)
	}
}
