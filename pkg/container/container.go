package container

import (
	"context"
	"fmt"
	"time"

	"guestdex-backend/internal/config"
	collectiblehandler "guestdex-backend/internal/domains/collectible/handler"
	collectiblerepo "guestdex-backend/internal/domains/collectible/repository"
	collectibleservice "guestdex-backend/internal/domains/collectible/service"
	guesthandler "guestdex-backend/internal/domains/guest/handler"
	guestrepo "guestdex-backend/internal/domains/guest/repository"
	guestservice "guestdex-backend/internal/domains/guest/service"
	moderationhandler "guestdex-backend/internal/domains/moderation/handler"
	moderationrepo "guestdex-backend/internal/domains/moderation/repository"
	moderationservice "guestdex-backend/internal/domains/moderation/service"
	userhandler "guestdex-backend/internal/domains/user/handler"
	userrepo "guestdex-backend/internal/domains/user/repository"
	userservice "guestdex-backend/internal/domains/user/service"
	rediscache "guestdex-backend/internal/infrastructure/cache"
	"guestdex-backend/internal/infrastructure/database"
	"guestdex-backend/internal/infrastructure/storage"
	"guestdex-backend/pkg/cache"
	"guestdex-backend/pkg/jwt"
	"guestdex-backend/pkg/logger"
)

// =====================================================
// DI CONTAINER
// =====================================================

// Container wires every layer of the application together, in
// dependency order: infrastructure, repositories, services, handlers.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB           *database.PostgresDB
	Cache        cache.Cache
	JWTManager   *jwt.Manager
	ImageStorage storage.ImageStorage

	redis *rediscache.RedisCache

	// Repositories
	UserRepo        userrepo.Repository
	GuestRepo       guestrepo.Repository
	CollectibleRepo collectiblerepo.Repository
	ModerationStore moderationrepo.Store

	// Services
	UserService        userservice.Service
	GuestService       guestservice.Service
	CollectibleService collectibleservice.Service
	ModerationService  moderationservice.Service

	// Handlers
	UserHandler        *userhandler.UserHandler
	GuestHandler       *guesthandler.GuestHandler
	CollectibleHandler *collectiblehandler.CollectibleHandler
	ModerationHandler  *moderationhandler.ModerationHandler
}

// NewContainer builds the full dependency graph. The database and
// object storage are required; Redis is optional and the services
// degrade to uncached reads without it.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	c := &Container{Config: cfg}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	c.initCache()
	if err := c.initStorage(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

func (c *Container) initDatabase() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.DB = database.New(c.Config.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := c.DB.Migrate(); err != nil {
		c.DB.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// initCache connects to Redis. A failed ping leaves Cache nil rather
// than failing startup; every cached read falls through to Postgres.
func (c *Container) initCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r := rediscache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := r.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, caching disabled", err)
		_ = r.Close()
		return
	}

	c.redis = r
	c.Cache = r
}

func (c *Container) initStorage() error {
	images, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init image storage: %w", err)
	}
	c.ImageStorage = images
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = userrepo.NewPostgresRepository(c.DB)
	c.GuestRepo = guestrepo.NewPostgresRepository(c.DB)
	c.CollectibleRepo = collectiblerepo.NewPostgresRepository(c.DB)
	c.ModerationStore = moderationrepo.NewPostgresStore(c.DB)
}

func (c *Container) initServices() {
	c.UserService = userservice.NewUserService(c.UserRepo, c.JWTManager)
	c.GuestService = guestservice.NewGuestService(c.GuestRepo, c.Cache)
	c.CollectibleService = collectibleservice.NewCollectibleService(c.CollectibleRepo, c.Cache)
	c.ModerationService = moderationservice.NewModerationService(c.ModerationStore, c.Cache, c.ImageStorage)
}

func (c *Container) initHandlers() {
	c.UserHandler = userhandler.NewUserHandler(c.UserService)
	c.GuestHandler = guesthandler.NewGuestHandler(c.GuestService)
	c.CollectibleHandler = collectiblehandler.NewCollectibleHandler(c.CollectibleService)
	c.ModerationHandler = moderationhandler.NewModerationHandler(c.ModerationService)
}

// Cleanup releases external connections. Safe to call on a partially
// initialized container.
func (c *Container) Cleanup() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
		c.redis = nil
		c.Cache = nil
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Debug("container cleaned up")
}
