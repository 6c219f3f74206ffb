package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/dmitrymomot/userkit/internal/app"
	"github.com/dmitrymomot/userkit/pkg/config"
	"github.com/dmitrymomot/userkit/pkg/httpserver"
	"github.com/dmitrymomot/userkit/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		logger.New().Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var srvCfg httpserver.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}

	a, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.Log.Error("failed to release resources", logger.Error(err))
		}
	}()

	srv := httpserver.NewFromConfig(srvCfg, httpserver.WithLogger(a.Log))
	return srv.Run(ctx, a.Handler)
}
