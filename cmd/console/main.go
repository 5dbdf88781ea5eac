package main

import (
	"context"
	"log"
	"os"
	"sync/atomic"

	"go.uber.org/zap"

	"user-crud-console/cmd/console/app"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("application exited with error: %v", err)
	}
}

func run() error {
	var current atomic.Pointer[app.App]

	ctx, stop := app.WithSignal(context.Background(), func(sig os.Signal) {
		if a := current.Load(); a != nil {
			a.Logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		}
	})
	defer stop()

	a, err := app.New(ctx, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	current.Store(a)

	return a.Run(ctx)
}
