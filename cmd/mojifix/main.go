package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/imgajeed76/mojifix/internal/cli"
	"github.com/imgajeed76/mojifix/internal/config"
	"github.com/imgajeed76/mojifix/internal/util"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		util.Logger().Warn("failed to read .env", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
