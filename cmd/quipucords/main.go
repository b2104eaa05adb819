// Copyright (c) 2026 Red Hat, Inc.
// quipucords - inventory and discovery of remote hosts
// This software is licensed under the GNU General Public License, version 3 (GPLv3).

// Command quipucords manages the host credentials used to scan remote
// systems and can seed a development database with fixture data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quipucords/quipucords/buildvars"
	"github.com/quipucords/quipucords/internal/config"
	"github.com/quipucords/quipucords/internal/db"
	"github.com/quipucords/quipucords/internal/i18n"
	"github.com/quipucords/quipucords/internal/logging"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand of one invocation.
type app struct {
	cfgFile string
	cfg     config.Config
	store   *db.Store
}

// openStore lazily opens the configured database.
func (a *app) openStore(ctx context.Context) (*db.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := db.Open(ctx, a.cfg.Database.Type, a.cfg.Database.Dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("config.error_init_db"), err)
	}
	a.store = s
	return s, nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logging.Warnf("closing database: %v", err)
		}
		a.store = nil
	}
}

// NewRootCmd builds a fresh command tree; tests call it once per case.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

// closeStoreAfter wraps every RunE below cmd so the store is closed even
// when the command fails; cobra skips post-run hooks on error.
func closeStoreAfter(cmd *cobra.Command, a *app) {
	for _, c := range cmd.Commands() {
		if run := c.RunE; run != nil {
			c.RunE = func(cmd *cobra.Command, args []string) error {
				defer a.close()
				return run(cmd, args)
			}
		}
		closeStoreAfter(c, a)
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quipucords",
		Short: "quipucords inventories and discovers remote hosts.",
		Long: `quipucords discovers and inventories remote systems.

This command manages the host credentials used to connect to those systems
over SSH (a password or an SSH key file, never both) and can populate a
development database with deployment reports and sources.`,
		SilenceUsage: true,
		Version:      buildvars.String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig[config.Config](cmd, config.Defaults(), &a.cfgFile)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			a.cfg = cfg
			i18n.Init(cfg.Language)
			if err := logging.SetLevel(cfg.LogLevel); err != nil {
				logging.Warnf("%v", err)
			}
			logging.Debugf("using %s database %s", cfg.Database.Type, cfg.Database.Dsn)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/quipucords/quipucords.yaml or ./quipucords.yaml)")
	cmd.PersistentFlags().String("db-type", "sqlite", `database type ("sqlite", "postgres", "mysql")`)
	cmd.PersistentFlags().String("db-dsn", "./quipucords.db", "database connection string (DSN)")
	cmd.PersistentFlags().String("lang", "en", `message language ("en", "de")`)
	cmd.PersistentFlags().String("log-level", "info", `log level ("debug", "info", "warn", "error")`)

	cmd.AddCommand(newCredentialCmd(a))
	cmd.AddCommand(newSeedCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	closeStoreAfter(cmd, a)

	return cmd
}
