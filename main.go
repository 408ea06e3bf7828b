package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lazarus-tools/eq-gear-compare-go/src/cli"
	"github.com/lazarus-tools/eq-gear-compare-go/src/gear"
	httpClient "github.com/lazarus-tools/eq-gear-compare-go/src/http"
	"github.com/lmittmann/tint"
)

var APP_VERSION = "unreleased"

func main() {
	// Parse command line flags
	flags, err := cli.ParseFlags(os.Args, APP_VERSION)
	if err != nil {
		slog.Error("failed to parse flags", "error", err)
		os.Exit(1)
	}

	// Setup logging
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: flags.LogLevel,
	})))

	// Get working directory
	cwd, err := os.Getwd()
	if err != nil {
		slog.Error("failed to get current working directory", "error", err)
		os.Exit(1)
	}

	// Setup caches
	cacheDir := filepath.Join(cwd, "cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		slog.Error("failed to create cache directory", "error", err)
		os.Exit(1)
	}

	client := httpClient.NewRealHTTPClient(httpClient.NewSiteTransport(), httpClient.UserAgent)

	manager := gear.NewManager(gear.Config{
		HTTPClient: client,
		CacheDir:   cacheDir,
	})

	// Create command handler
	handler := cli.NewCommandHandler(manager)
	ctx := context.Background()

	// Execute command
	switch flags.SubCommand {
	case cli.ItemSubCommand:
		if err := handler.Item(ctx, flags.ItemConfig); err != nil {
			slog.Error("item command failed", "error", err)
			os.Exit(1)
		}

	case cli.SpellSubCommand:
		if err := handler.Spell(ctx, flags.SpellConfig); err != nil {
			slog.Error("spell command failed", "error", err)
			os.Exit(1)
		}

	case cli.CacheSubCommand:
		if err := handler.Cache(ctx, flags.CacheConfig); err != nil {
			slog.Error("cache command failed", "error", err)
			os.Exit(1)
		}

	default:
		slog.Error("unknown subcommand", "subcommand", flags.SubCommand)
		os.Exit(1)
	}
}
