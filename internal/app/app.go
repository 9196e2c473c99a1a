package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/kakigori/storefront/internal/adapter/orderapi"
	"github.com/kakigori/storefront/internal/board"
	"github.com/kakigori/storefront/internal/config"
	"github.com/kakigori/storefront/internal/domain/repository"
	"github.com/kakigori/storefront/internal/usecase"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStorefrontFacade,
		newHTTPServer,
		newBoardRegistry,
	),
	fx.Invoke(registerLifecycle),
)

const readHeaderTimeout = 5 * time.Second

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       2 * time.Minute,
	}
}

type registryParams struct {
	fx.In

	Client orderapi.Client
	Store  repository.CredentialStore
	Flows  *usecase.FlowStore
	Config *config.Config
	Logger *slog.Logger
}

func newBoardRegistry(p registryParams) *BoardRegistry {
	purger, _ := p.Store.(repository.CredentialPurger)
	opts := RegistryOptions{
		Board: board.Options{
			PollInterval:   p.Config.BoardPollInterval,
			LongPressDelay: p.Config.LongPressDelay,
		},
		PublicInterval: p.Config.PublicPollInterval,
		IdleTimeout:    p.Config.BoardIdleTimeout,
		CredentialTTL:  p.Config.CredentialTTL,
	}
	if p.Flows != nil {
		opts.Flows = p.Flows
	}
	return NewBoardRegistry(p.Client, purger, p.Logger, opts)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Boards     *BoardRegistry
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting kakigori storefront",
				slog.String("addr", p.Server.Addr),
				slog.String("orders", p.Config.OrderAPIAddress),
				slog.String("credentials", p.Config.CredentialBackend),
			)
			p.Boards.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			p.Boards.Shutdown()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("kakigori storefront stopped")
			return nil
		},
	})
}
