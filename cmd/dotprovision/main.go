package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	root := newRootCmd(version)
	return exitCode(root.ExecuteContext(ctx), os.Stderr)
}

// exitCode maps an Execute error to the process exit code, printing the
// message (and usage when asked for) to stderr.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var ce *cliError
	if errors.As(err, &ce) {
		if ce.Err != nil && ce.Err.Error() != "" {
			fmt.Fprintln(stderr, ce.Err.Error())
			fmt.Fprintln(stderr)
		}
		if ce.ShowUsage && ce.Cmd != nil {
			_ = ce.Cmd.Usage()
		}
		return ce.Code
	}
	fmt.Fprintln(stderr, err.Error())
	return 1
}
