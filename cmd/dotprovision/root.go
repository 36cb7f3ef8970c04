package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/benithors/dotprovision/internal/config"
	"github.com/benithors/dotprovision/internal/logging"
)

type app struct {
	Version string

	// Global flags.
	VersionFlag bool
	ConfigPath  string
	StorePath   string
	Format      string
	Timeout     time.Duration
	LogLevel    string
	LogFormat   string
	Quiet       bool
	Verbose     bool

	// Derived runtime state.
	cfg       config.Config
	log       *slog.Logger
	outFormat outputFormat
}

func newRootCmd(ver string) *cobra.Command {
	a := &app{Version: ver}

	root := &cobra.Command{
		Use:           "dotprovision",
		Short:         "Buy cheap domains, point them at a server through Cloudflare, and check they are live",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErr(cmd, fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath()))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return &cliError{Code: 2, ShowUsage: true, Cmd: cmd}
		},
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SetFlagErrorFunc(usageErr)

	pf := root.PersistentFlags()
	pf.BoolVar(&a.VersionFlag, "version", false, "Print version and exit")
	pf.StringVar(&a.ConfigPath, "config", "", "YAML config file (env vars override it, flags override both)")
	pf.StringVar(&a.StorePath, "store", "urls.json", "Result store path")
	pf.StringVar(&a.Format, "format", "auto", "Output format: auto|table|json|plain")
	pf.DurationVar(&a.Timeout, "timeout", 30*time.Second, "Per-request timeout for registrar and DNS API calls")
	pf.StringVar(&a.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")
	pf.StringVar(&a.LogFormat, "log-format", "text", "Log format: text|json")
	pf.BoolVarP(&a.Quiet, "quiet", "q", false, "Only log warnings and errors")
	pf.BoolVarP(&a.Verbose, "verbose", "v", false, "Debug logging (per-request and per-probe detail)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if a.VersionFlag {
			fmt.Fprintf(cmd.OutOrStdout(), "dotprovision %s (%s/%s)\n", a.Version, runtime.GOOS, runtime.GOARCH)
			return errExit0
		}
		if a.Quiet && a.Verbose {
			return usageErr(cmd, fmt.Errorf("flags are mutually exclusive: --quiet, --verbose"))
		}

		cfg, err := config.Load(a.ConfigPath)
		if err != nil {
			return usageErr(cmd, err)
		}

		flags := cmd.Flags()
		if flags.Changed("store") {
			cfg.Store = a.StorePath
		}
		if flags.Changed("timeout") {
			cfg.Timeout = a.Timeout
		}
		if flags.Changed("log-level") {
			cfg.Log.Level = a.LogLevel
		}
		if flags.Changed("log-format") {
			cfg.Log.Format = a.LogFormat
		}
		switch {
		case a.Verbose:
			cfg.Log.Level = "debug"
		case a.Quiet:
			cfg.Log.Level = "warn"
		}

		log, err := logging.New(cmd.ErrOrStderr(), cfg.Log)
		if err != nil {
			return usageErr(cmd, err)
		}

		a.cfg = cfg
		a.log = log.With("cmd", strings.TrimPrefix(cmd.CommandPath(), root.Name()+" "))
		a.outFormat = resolveFormat(a.Format, cmd.OutOrStdout())
		return nil
	}

	root.AddCommand(newProvisionCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newDomainsCmd(a))
	root.AddCommand(newZonesCmd(a))
	root.AddCommand(newRecordsCmd(a))

	return root
}
