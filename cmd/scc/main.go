// Command scc computes the strongly connected components of the state space
// of Boolean networks.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sybila/biodivine-lib-algo-scc/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
