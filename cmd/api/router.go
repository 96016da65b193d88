package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		c.RateLimiter.Middleware(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupUserRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.UserHandler.Login)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.List)
		books.GET("/search", c.BookHandler.Search)
		books.GET("/byIsbn/:isbn", c.BookHandler.GetByISBN)
		books.GET("/:id", c.BookHandler.GetByID)
		books.POST("", c.BookHandler.Create)
		books.PUT("/:id", c.BookHandler.Update)
		books.DELETE("/:id", middleware.Auth(c.JWTManager), c.BookHandler.Delete)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authRequired := middleware.Auth(c.JWTManager)

	users := v1.Group("/users")
	{
		users.GET("", c.UserHandler.List)
		users.GET("/search", c.UserHandler.Search)
		users.GET("/:id", c.UserHandler.GetByID)
		users.POST("", c.UserHandler.Create)
		users.PUT("/:id", authRequired, c.UserHandler.Update)
		users.DELETE("/:id", authRequired, c.UserHandler.Delete)

		// library membership
		users.POST("/:id/addBook", authRequired, c.UserHandler.AddBook)
		users.DELETE("/:id/removeBook", authRequired, c.UserHandler.RemoveBook)
		users.PUT("/:id/library", authRequired, c.UserHandler.ReplaceLibrary)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{
			"status":      "ok",
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			ctx.JSON(http.StatusServiceUnavailable, response.Response{Success: false, Data: status})
			return
		}
		status["database"] = "ok"

		response.Success(ctx, http.StatusOK, status)
	}
}
