package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/interntrack/internal/buildinfo"
	"github.com/dmitrijs2005/interntrack/internal/client/cli"
	"github.com/dmitrijs2005/interntrack/internal/client/config"
)

func main() {
	buildinfo.Print(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
