package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/fflap/portfolio/internal/catalog"
	"github.com/fflap/portfolio/internal/config"
	"github.com/fflap/portfolio/internal/console"
	"github.com/fflap/portfolio/internal/db"
	"github.com/fflap/portfolio/internal/prefs"
	"github.com/fflap/portfolio/internal/sshconsole"
	"github.com/fflap/portfolio/internal/visitor"
	"github.com/fflap/portfolio/internal/web"
)

func newServeCmd() *cobra.Command {
	var cfgPath string
	var sshEnabled bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP and, optionally, the console over SSH",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("ssh") {
				cfg.SSH.Enabled = sshEnabled
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultPath, "path to config file")
	cmd.Flags().BoolVar(&sshEnabled, "ssh", false, "also serve the console over SSH")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := pslog.Ctx(ctx)
	gin.SetMode(cfg.Gin.Mode)

	portfolio, err := catalog.Load(cfg.Content.Path)
	if err != nil {
		return err
	}

	store, err := db.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("database opened", "path", store.Path())

	analytics := web.NewAnalytics(store)
	defer analytics.Wait()
	if _, err := analytics.Purge(ctx); err != nil {
		logger.Warn("visitor purge failed", "err", err)
	}

	interp := console.NewInterpreter(console.Deps{Catalog: portfolio, Recorder: analytics})
	registry := visitor.NewRegistry(interp, func(id string) prefs.Store {
		return prefs.NewSQLite(store, id)
	}, visitor.WithIdleTimeout(cfg.Session.IdleTimeout))

	site, err := web.NewServer(web.Deps{Registry: registry, Catalog: portfolio, Analytics: analytics})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		registry.Run(ctx)
	}()

	errCh := make(chan error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errCh <- web.ListenAndServe(ctx, cfg.HTTP.Addr, site.Handler())
	}()
	if cfg.SSH.Enabled {
		ssh := &sshconsole.Server{
			Addr:        cfg.SSH.Addr,
			HostKeyPath: cfg.SSH.HostKeyPath,
			Registry:    registry,
			Interpreter: interp,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- ssh.ListenAndServe(ctx)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}
	cancel()
	wg.Wait()
	close(errCh)
	for err := range errCh {
		runErr = errors.Join(runErr, err)
	}
	if runErr == nil {
		logger.Info("portfolio stopped")
	}
	return runErr
}
