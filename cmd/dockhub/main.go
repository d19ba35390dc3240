// Where: cmd/dockhub/main.go
// What: CLI entrypoint.
// Why: Execute dockhub with configured dependencies.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sciurus/dockhub/internal/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := command.Run(ctx, os.Args[1:], buildDependencies())
	stop()
	os.Exit(code)
}
