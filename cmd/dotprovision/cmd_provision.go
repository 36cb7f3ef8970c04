package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/benithors/dotprovision/internal/generate"
	"github.com/benithors/dotprovision/internal/metrics"
	"github.com/benithors/dotprovision/internal/provision"
	"github.com/benithors/dotprovision/internal/store"
)

func newProvisionCmd(a *app) *cobra.Command {
	var (
		cycles      int
		maxPrice    float64
		serverIP    string
		phrase      string
		seed        int64
		metricsFile string
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Run acquisition cycles: search, buy, create zone, point nameservers, add records, store URL",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("cycles") {
				a.cfg.Provision.Cycles = cycles
			}
			if flags.Changed("max-price") {
				a.cfg.Provision.MaxPrice = maxPrice
			}
			if flags.Changed("server-ip") {
				a.cfg.Provision.ServerIP = serverIP
			}
			if flags.Changed("phrase") {
				a.cfg.Provision.Phrase = phrase
			}
			if err := a.cfg.ValidateProvision(); err != nil {
				return usageErr(cmd, err)
			}

			reg, err := a.newRegistrar()
			if err != nil {
				return usageErr(cmd, err)
			}
			dns, err := a.newDNSProvider()
			if err != nil {
				return usageErr(cmd, err)
			}

			m := metrics.New()
			orch, err := provision.New(reg, dns, store.NewJSONFile(a.cfg.Store), provision.Options{
				ServerIP:  a.cfg.Provision.ServerIP,
				MaxPrice:  a.cfg.Provision.MaxPrice,
				Generator: generate.New(generate.Options{Phrase: a.cfg.Provision.Phrase, Seed: seed}),
				Logger:    a.log,
				Metrics:   m,
				RunID:     uuid.NewString(),
			})
			if err != nil {
				return usageErr(cmd, err)
			}

			rep := orch.Run(cmd.Context(), a.cfg.Provision.Cycles)

			if err := writeReport(cmd.OutOrStdout(), a.outFormat, rep); err != nil {
				return runtimeErr(cmd, fmt.Errorf("failed to write output: %w", err))
			}
			if err := m.WriteTextfile(metricsFile); err != nil {
				return runtimeErr(cmd, fmt.Errorf("failed to write metrics: %w", err))
			}
			if strict && (rep.Failed > 0 || rep.Skipped > 0) {
				return &cliError{Code: 1}
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(usageErr)
	cmd.Flags().IntVar(&cycles, "cycles", 5, "Number of acquisition cycles to run")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 5, "Highest purchase price to accept (inclusive)")
	cmd.Flags().StringVar(&serverIP, "server-ip", "", "IPv4 address the apex and www A records point at")
	cmd.Flags().StringVar(&phrase, "phrase", "", "Derive search keywords from this phrase instead of random syllables")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the keyword generator (0 = time based)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write run metrics here in Prometheus textfile format")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero if any cycle failed or was skipped")

	return cmd
}
