package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/kakigori/storefront/internal/app"
	"github.com/kakigori/storefront/internal/pkg/session"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

type routerParams struct {
	fx.In

	Facade *app.StorefrontFacade
	Signer *session.Signer
	Logger *slog.Logger
}

func newRouter(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Signer, p.Logger)
}
