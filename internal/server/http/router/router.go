package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketplace/internal/config"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/server/http/handlers"
	"github.com/polkiloo/marketplace/internal/server/http/middleware"
)

// EventsPath is the seller live channel. It is served uncompressed so events flush immediately.
const EventsPath = "/api/seller/events"

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithDecompressFn(gzip.DefaultDecompressHandle),
		gzip.WithExcludedPaths([]string{EventsPath}),
	))

	authHandler := handlers.NewAuthHandler(facade, cfg.TokenTTL)
	productHandler := handlers.NewProductHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	sellerHandler := handlers.NewSellerHandler(facade)
	eventsHandler := handlers.NewEventsHandler(facade, cfg.StreamBuffer, cfg.StreamKeepAlive, logger)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.GET("/products", productHandler.List)

	authGroup := api.Group("/auth")
	for _, role := range []model.Role{model.RoleBuyer, model.RoleSeller} {
		authGroup.POST("/"+string(role)+"/register", authHandler.Register(role))
		authGroup.POST("/"+string(role)+"/login", authHandler.Login(role))
	}

	requireAuth := middleware.AuthRequired(facade)
	sellerOnly := middleware.RequireRole(model.RoleSeller)

	orders := api.Group("/orders", requireAuth)
	orders.GET("/my-orders", orderHandler.MyOrders)
	orders.POST("", orderHandler.Create)
	orders.PATCH("/:id/cancel", orderHandler.Cancel)
	orders.PATCH("/:id/status", sellerOnly, orderHandler.UpdateStatus)
	orders.GET("/:id/invoice", orderHandler.Invoice)

	seller := api.Group("/seller", requireAuth, sellerOnly)
	seller.GET("/stats", sellerHandler.Stats)
	seller.GET("/orders", sellerHandler.Orders)
	seller.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	seller.GET("/orders/:id/invoice", orderHandler.Invoice)
	seller.POST("/products", productHandler.Create)
	seller.GET("/events", eventsHandler.Stream)

	return engine
}
