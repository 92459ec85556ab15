package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/de-tools/aims/pkg/runtime/terminal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli := terminal.NewCLI(terminal.Options{
		Output:    os.Stdout,
		ErrOutput: os.Stderr,
		Input:     os.Stdin,
	})

	code := cli.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
