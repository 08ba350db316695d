package main

import (
	"github.com/spf13/cobra"

	"github.com/fflap/portfolio/internal/catalog"
	"github.com/fflap/portfolio/internal/config"
	"github.com/fflap/portfolio/internal/console"
	"github.com/fflap/portfolio/internal/db"
	"github.com/fflap/portfolio/internal/prefs"
	"github.com/fflap/portfolio/internal/tui"
	"github.com/fflap/portfolio/internal/visitor"
)

// localVisitor scopes preferences of the terminal console.
const localVisitor = "local"

func newConsoleCmd() *cobra.Command {
	var cfgPath string
	var ephemeral bool
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Open the portfolio console in this terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			portfolio, err := catalog.Load(cfg.Content.Path)
			if err != nil {
				return err
			}

			var stores visitor.StoreFactory
			if !ephemeral {
				store, err := db.Open(cfg.Database.Path)
				if err != nil {
					return err
				}
				defer store.Close()
				stores = func(id string) prefs.Store { return prefs.NewSQLite(store, id) }
			}

			interp := console.NewInterpreter(console.Deps{Catalog: portfolio})
			registry := visitor.NewRegistry(interp, stores)
			v := registry.Get(cmd.Context(), localVisitor)
			return tui.Run(cmd.Context(), tui.NewModel(cmd.Context(), v, interp, portfolio.Name))
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultPath, "path to config file")
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep theme and background in memory only")
	return cmd
}
