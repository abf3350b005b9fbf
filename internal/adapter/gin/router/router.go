package router

import (
	"net/http"

	"account-item-service/internal/adapter/gin/handler"
	"account-item-service/internal/adapter/gin/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SetupRouter configures and returns a Gin router with all routes and middleware.
// The paths and verbs are a compatibility contract; do not rearrange them.
func SetupRouter(
	accountHandler *handler.AccountHandler,
	itemHandler *handler.ItemHandler,
	rateLimitCfg middleware.RateLimiterConfig,
	redisClient *redis.Client,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.RateLimiter(rateLimitCfg, redisClient))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "account-item-service",
		})
	})

	// Account routes
	router.POST("/register", accountHandler.Register)
	router.POST("/login", accountHandler.Login)

	// Item routes. GET keys the wildcard by owner, PUT/DELETE by item id;
	// gin keeps a separate tree per method so the names do not collide.
	items := router.Group("/items")
	{
		items.POST("", itemHandler.CreateItem)
		items.GET("/:userId", itemHandler.ListItems)
		items.PUT("/:id", itemHandler.UpdateItem)
		items.DELETE("/:id", itemHandler.DeleteItem)
	}

	return router
}
