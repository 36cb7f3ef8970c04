package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benithors/dotprovision/internal/generate"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		count  int
		phrase string
		seed   int64
		digits int
	)

	cmd := &cobra.Command{
		Use:   "generate [phrase...]",
		Short: "Print candidate search keywords without calling any API",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return usageErr(cmd, fmt.Errorf("--count must be at least 1"))
			}
			if digits > generate.MaxDigits {
				return usageErr(cmd, fmt.Errorf("--digits must be at most %d", generate.MaxDigits))
			}
			p := joinPhrase(args, phrase)
			if p == "" {
				p = a.cfg.Provision.Phrase
			}

			gen := generate.New(generate.Options{Phrase: p, Seed: seed, Digits: digits})
			if err := writeLabels(cmd.OutOrStdout(), a.outFormat, gen.Labels(count)); err != nil {
				return runtimeErr(cmd, fmt.Errorf("failed to write output: %w", err))
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(usageErr)
	cmd.Flags().IntVar(&count, "count", 10, "Number of distinct keywords to print")
	cmd.Flags().StringVar(&phrase, "phrase", "", "Derive keywords from this phrase")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Generator seed (0 = time based)")
	cmd.Flags().IntVar(&digits, "digits", 0, "Numeric suffix length (0 = default, negative = none)")

	return cmd
}
