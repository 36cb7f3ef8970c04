package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDomainsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List domains on the registrar account",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ValidateRegistrar(); err != nil {
				return usageErr(cmd, err)
			}
			reg, err := a.newRegistrar()
			if err != nil {
				return usageErr(cmd, err)
			}

			domains, err := reg.ListDomains(cmd.Context())
			if err != nil {
				return runtimeErr(cmd, err)
			}
			if err := writeDomains(cmd.OutOrStdout(), a.outFormat, domains); err != nil {
				return runtimeErr(cmd, fmt.Errorf("failed to write output: %w", err))
			}
			return nil
		},
	}
	cmd.SetFlagErrorFunc(usageErr)
	return cmd
}
