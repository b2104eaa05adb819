package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quipucords/quipucords/internal/i18n"
	"github.com/quipucords/quipucords/internal/testutil"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		reports      int
		fingerprints int
		sources      int
		noOptions    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with generated reports and sources",
		Long: `Creates deployment reports, each with its system fingerprints, and sources
using generated data. Intended for development and demo databases.

Without --fingerprints every report gets between 1 and 5 fingerprints.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			var reportOpts []testutil.ReportOption
			if cmd.Flags().Changed("fingerprints") {
				reportOpts = append(reportOpts, testutil.WithNumberOfFingerprints(fingerprints))
			}
			rf := testutil.DeploymentReportFactory{Store: store, Rand: testutil.DefaultRand}
			created, err := rf.CreateBatch(ctx, reports, reportOpts...)
			if err != nil {
				return fmt.Errorf("seed reports: %w", err)
			}
			fpCount := 0
			for _, r := range created {
				fpCount += len(r.SystemFingerprints)
			}

			var srcOpts []testutil.SourceOption
			if noOptions {
				srcOpts = append(srcOpts, testutil.WithoutOptions())
			}
			sf := testutil.SourceFactory{Store: store}
			for i := 0; i < sources; i++ {
				if _, err := sf.Create(ctx, srcOpts...); err != nil {
					return fmt.Errorf("seed sources: %w", err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.seed_done", len(created), fpCount, sources))
			return nil
		},
	}

	cmd.Flags().IntVar(&reports, "reports", 1, "number of deployment reports to create")
	cmd.Flags().IntVar(&fingerprints, "fingerprints", 0, "fingerprints per report (random when unset)")
	cmd.Flags().IntVar(&sources, "sources", 0, "number of sources to create")
	cmd.Flags().BoolVar(&noOptions, "no-options", false, "create sources without an options record")
	return cmd
}
