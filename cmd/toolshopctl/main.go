// Command toolshopctl runs operator tasks against the toolshop database:
// schema migrations and the catalog import jobs.
package main

import (
	"log/slog"
	"os"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
