package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/kakigori/storefront/internal/server/http/handlers"
	"github.com/kakigori/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, sessions middleware.SessionCodec, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/healthz", handlers.Health)

	orderingHandler := handlers.NewOrderingHandler(facade)
	credentialHandler := handlers.NewCredentialHandler(facade)
	boardHandler := handlers.NewBoardHandler(facade)
	publicHandler := handlers.NewPublicBoardHandler(facade)

	site := engine.Group("")
	site.Use(middleware.Session(sessions))

	order := site.Group("/order/:storeId")
	order.GET("", orderingHandler.State)
	order.POST("/flow/next", orderingHandler.Next)
	order.POST("/flow/back", orderingHandler.Back)
	order.PUT("/selection", orderingHandler.Select)
	order.POST("/orders", orderingHandler.Place)
	order.GET("/receipt/:orderId", orderingHandler.Receipt)

	store := site.Group("/store")
	store.GET("", credentialHandler.Get)
	store.GET("/credentials", credentialHandler.Get)
	store.PUT("/credentials", credentialHandler.Save)
	store.DELETE("/credentials", credentialHandler.Logout)
	store.GET("/public", publicHandler.Show)

	boardGroup := store.Group("/board")
	boardGroup.GET("", boardHandler.Show)
	boardGroup.POST("/reload", boardHandler.Reload)
	boardGroup.POST("/orders/:orderId/transition", boardHandler.Transition)
	boardGroup.POST("/selection/:status/toggle", boardHandler.Toggle)
	boardGroup.POST("/selection/:status/all", boardHandler.ToggleAll)
	boardGroup.DELETE("/selection", boardHandler.ClearSelection)
	boardGroup.POST("/bulk/:status", boardHandler.Bulk)
	boardGroup.PUT("/layout", boardHandler.Layout)
	boardGroup.POST("/pointer", boardHandler.Pointer)

	return engine
}
