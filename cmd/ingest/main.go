package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dan9191/trade-prices/cmd/ingest/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	commands.ExecuteContext(ctx)
}
