package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newZonesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List Cloudflare zones with their ids (for the records commands)",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ValidateDNS(); err != nil {
				return usageErr(cmd, err)
			}
			dns, err := a.newDNSProvider()
			if err != nil {
				return usageErr(cmd, err)
			}

			zones, err := dns.ListZones(cmd.Context())
			if err != nil {
				return runtimeErr(cmd, err)
			}
			if err := writeZones(cmd.OutOrStdout(), a.outFormat, zones); err != nil {
				return runtimeErr(cmd, fmt.Errorf("failed to write output: %w", err))
			}
			return nil
		},
	}
	cmd.SetFlagErrorFunc(usageErr)
	return cmd
}
