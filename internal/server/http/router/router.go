package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/mugworks/storefront/internal/server/http/handlers"
	"github.com/mugworks/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	profileHandler := handlers.NewProfileHandler(facade)
	addressHandler := handlers.NewAddressHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// gateway webhook, unauthenticated
	api.POST("/payments/phonepe/callback", paymentHandler.Callback)

	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired(facade))
	authorized.POST("/profiles", profileHandler.Create)
	authorized.GET("/profiles", profileHandler.List)
	authorized.GET("/profiles/:id", profileHandler.Get)
	authorized.PUT("/profiles/:id", profileHandler.Update)
	authorized.DELETE("/profiles/:id", profileHandler.Delete)

	authorized.POST("/addresses", addressHandler.Create)
	authorized.GET("/addresses", addressHandler.List)
	authorized.GET("/addresses/:id", addressHandler.Get)
	authorized.PUT("/addresses/:id", addressHandler.Update)
	authorized.DELETE("/addresses/:id", addressHandler.Delete)

	authorized.POST("/orders", orderHandler.Create)
	authorized.GET("/orders", orderHandler.List)
	authorized.GET("/orders/:id", orderHandler.Get)
	authorized.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	authorized.POST("/orders/:id/payment", paymentHandler.Initiate)

	authorized.GET("/mug-units", orderHandler.MugUnits)

	return engine
}
