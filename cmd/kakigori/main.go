// Command kakigori serves the shaved-ice storefront: customer ordering,
// the operator board and the "now serving" display.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"

	"github.com/kakigori/storefront/internal/di"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := fx.New(
		fx.Provide(func() context.Context { return ctx }),
		di.Module(),
	)

	if err := run(ctx, app); err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("storefront terminated", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
