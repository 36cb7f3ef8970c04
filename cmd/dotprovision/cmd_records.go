package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecordsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Inspect or remove DNS records in a Cloudflare zone",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return &cliError{Code: 2, ShowUsage: true, Cmd: cmd}
		},
	}
	cmd.SetFlagErrorFunc(usageErr)

	list := &cobra.Command{
		Use:   "list <zone-id>",
		Short: "List records in a zone",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ValidateDNS(); err != nil {
				return usageErr(cmd, err)
			}
			dns, err := a.newDNSProvider()
			if err != nil {
				return usageErr(cmd, err)
			}

			records, err := dns.ListRecords(cmd.Context(), args[0])
			if err != nil {
				return runtimeErr(cmd, err)
			}
			if err := writeRecords(cmd.OutOrStdout(), a.outFormat, records); err != nil {
				return runtimeErr(cmd, fmt.Errorf("failed to write output: %w", err))
			}
			return nil
		},
	}
	list.SetFlagErrorFunc(usageErr)

	del := &cobra.Command{
		Use:   "delete <zone-id> <record-id>",
		Short: "Delete one record from a zone",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ValidateDNS(); err != nil {
				return usageErr(cmd, err)
			}
			dns, err := a.newDNSProvider()
			if err != nil {
				return usageErr(cmd, err)
			}

			if err := dns.DeleteRecord(cmd.Context(), args[0], args[1]); err != nil {
				return runtimeErr(cmd, err)
			}
			a.log.Info("deleted dns record", "zone_id", args[0], "record_id", args[1])
			return nil
		},
	}
	del.SetFlagErrorFunc(usageErr)

	cmd.AddCommand(list, del)
	return cmd
}
