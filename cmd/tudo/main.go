// Package main is the entry point for the tudo terminal client.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tudo/internal/backend/googletasks"
	"tudo/internal/cli"
	"tudo/internal/commands"
	"tudo/internal/config"
	"tudo/internal/provider"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory := func(ctx context.Context, cfg *config.Config) (provider.Provider, error) {
		client, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := client.Load(ctx); err != nil {
			return nil, err
		}
		return client, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	dispatcher.RequireCredentials = true

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
