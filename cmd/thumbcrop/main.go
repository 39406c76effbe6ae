package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"thumbcrop/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCmd()
	cmd.SetArgs(cli.NormalizeArgs(args))

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrTasksFailed) {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
		return 1
	}
	return 0
}
