package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/benithors/dotprovision/internal/availability"
	"github.com/benithors/dotprovision/internal/metrics"
	"github.com/benithors/dotprovision/internal/store"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		probeTimeout time.Duration
		metricsFile  string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Probe every stored URL and print how many are active (HTTP 404) vs pending",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("probe-timeout") {
				a.cfg.Check.Timeout = probeTimeout
			}

			st := store.NewJSONFile(a.cfg.Store)
			urls, err := st.URLs(cmd.Context())
			if err != nil {
				return runtimeErr(cmd, fmt.Errorf("failed to read result store: %w", err))
			}

			m := metrics.New()
			checker := availability.NewChecker(availability.Options{
				Timeout:   a.cfg.Check.Timeout,
				UserAgent: a.userAgent(),
				Logger:    a.log,
				Metrics:   m,
			})
			summary := checker.Check(cmd.Context(), urls)
			a.log.Info("checked stored urls", "store", st.Path(), "total", summary.Total, "active", summary.Active, "unavailable", summary.Unavailable)

			if err := writeSummary(cmd.OutOrStdout(), a.outFormat, summary); err != nil {
				return runtimeErr(cmd, fmt.Errorf("failed to write output: %w", err))
			}
			if err := m.WriteTextfile(metricsFile); err != nil {
				return runtimeErr(cmd, fmt.Errorf("failed to write metrics: %w", err))
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(usageErr)
	cmd.Flags().DurationVar(&probeTimeout, "probe-timeout", 10*time.Second, "Per-URL probe timeout")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write probe metrics here in Prometheus textfile format")

	return cmd
}
