package container

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/middleware"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"

	"library-backend/internal/domains/book"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"

	"library-backend/internal/domains/catalog"

	"library-backend/internal/domains/user"
	userHandler "library-backend/internal/domains/user/handler"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services and handlers.
type Container struct {
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	RateLimiter *middleware.RateLimiter

	BookRepo book.Repository
	UserRepo user.Repository

	BookService    book.Service
	CatalogService catalog.Service
	UserService    user.Service

	BookHandler *bookHandler.BookHandler
	UserHandler *userHandler.UserHandler

	redisCache *infraCache.RedisCache
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("database connected", map[string]interface{}{
		"host": cfg.Database.Host,
	})

	// Redis is non-critical: repositories fall back to the database when
	// the cache is down, so a failed ping only logs a warning.
	c.redisCache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.redisCache.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, continuing without cache", err)
	}
	c.Cache = c.redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	c.RateLimiter = middleware.NewRateLimiter(20, 40)

	c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.UserRepo = userRepo.NewPostgresRepository(c.DB.Pool)

	c.BookService = bookService.NewBookService(c.BookRepo)
	c.CatalogService = catalog.NewService(catalog.NewHTTPClient(cfg.OpenLibrary), c.BookRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.BookRepo, c.JWTManager)

	c.BookHandler = bookHandler.NewBookHandler(c.BookService, c.CatalogService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)

	logger.Info("container initialized", nil)
	return c, nil
}

// Cleanup releases infrastructure resources, in reverse init order.
func (c *Container) Cleanup() {
	if c.RateLimiter != nil {
		c.RateLimiter.Stop()
	}
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			logger.Warn("redis close failed", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("container cleaned up", nil)
}
