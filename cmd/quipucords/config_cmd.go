package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quipucords/quipucords/internal/config"
	"github.com/quipucords/quipucords/internal/i18n"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the quipucords configuration file",
	}

	var system bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Long: `Writes the configuration currently in effect (defaults, environment and
flags merged) to the user config file, or to /etc/quipucords with --system.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteConfigFile(&a.cfg, system)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.config_written", path))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&system, "system", false, "write the system-wide config file")
	cmd.AddCommand(initCmd)
	return cmd
}
