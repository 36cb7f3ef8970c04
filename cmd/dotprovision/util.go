package main

import (
	"strings"

	"github.com/spf13/cobra"
)

// joinPhrase prefers positional words over the flag value.
func joinPhrase(args []string, flagVal string) string {
	words := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			words = append(words, a)
		}
	}
	if len(words) > 0 {
		return strings.Join(words, " ")
	}
	return strings.TrimSpace(flagVal)
}

// exactArgs is cobra.ExactArgs reported as a usage error (exit 2).
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageErr(cmd, err)
		}
		return nil
	}
}
