package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"microblog-backend/internal/config"
	"microblog-backend/internal/domains/auth"
	authHandler "microblog-backend/internal/domains/auth/handler"
	"microblog-backend/internal/domains/auth/registry"
	authService "microblog-backend/internal/domains/auth/service"
	"microblog-backend/internal/domains/post"
	postHandler "microblog-backend/internal/domains/post/handler"
	postRepo "microblog-backend/internal/domains/post/repository"
	postService "microblog-backend/internal/domains/post/service"
	"microblog-backend/internal/domains/user"
	userHandler "microblog-backend/internal/domains/user/handler"
	userRepo "microblog-backend/internal/domains/user/repository"
	userService "microblog-backend/internal/domains/user/service"
	"microblog-backend/internal/infrastructure/cache"
	"microblog-backend/internal/infrastructure/email"
)

// Container holds the whole dependency graph. Initialization order
// matters: config, then infrastructure, then repositories, registries,
// services, handlers.
type Container struct {
	Config *config.Config

	// Infrastructure. Redis is nil with the memory registry backend.
	Redis  *cache.RedisClient
	Mailer email.Mailer

	// Repositories (file-backed documents)
	UserRepo user.Repository
	PostRepo post.Repository

	// Transient registries
	OTPRegistry     auth.OTPRegistry
	SessionRegistry auth.SessionRegistry

	// Optional background sweep of expired OTP entries
	Sweeper *registry.Sweeper

	// Services
	AuthService auth.Service
	UserService user.Service
	PostService post.Service

	// Handlers
	AuthHandler *authHandler.AuthHandler
	UserHandler *userHandler.UserHandler
	PostHandler *postHandler.PostHandler
}

// NewContainer builds and wires the dependency graph.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// File-backed stores
	c.UserRepo = userRepo.NewJSONFileRepository(cfg.Storage.DataDir)
	c.PostRepo = postRepo.NewJSONFileRepository(cfg.Storage.DataDir)
	log.Printf("✅ JSON document stores at %s", cfg.Storage.DataDir)

	// Registries
	if err := c.initRegistries(); err != nil {
		return nil, err
	}

	// Mailer
	switch cfg.Mailer.Provider {
	case "smtp":
		c.Mailer = email.NewSMTPMailer(cfg.Mailer.SMTPHost, cfg.Mailer.SMTPPort, cfg.Mailer.From)
		log.Printf("✅ SMTP mailer (%s:%s)", cfg.Mailer.SMTPHost, cfg.Mailer.SMTPPort)
	default:
		c.Mailer = email.NewConsoleMailer()
		log.Println("✅ Console mailer (diagnostic mode: OTP codes are logged)")
	}

	// Services
	c.AuthService = authService.NewAuthService(
		c.UserRepo, c.OTPRegistry, c.SessionRegistry, c.Mailer, cfg.OTP.TTL)
	c.UserService = userService.NewUserService(c.UserRepo)
	c.PostService = postService.NewPostService(c.PostRepo, c.UserRepo)

	// Handlers
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)

	// Optional OTP sweep
	if cfg.OTP.SweepInterval > 0 {
		c.Sweeper = registry.NewSweeper(c.OTPRegistry, cfg.OTP.SweepInterval)
		c.Sweeper.Start()
		log.Printf("✅ OTP sweeper running every %s", cfg.OTP.SweepInterval)
	}

	log.Println("🎉 Container initialized")
	return c, nil
}

func (c *Container) initRegistries() error {
	if c.Config.Registry.Backend == "redis" {
		redisClient := cache.NewRedisClient(
			c.Config.Redis.Host,
			c.Config.Redis.Password,
			c.Config.Redis.DB,
		)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := redisClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}

		c.Redis = redisClient
		c.OTPRegistry = registry.NewRedisOTPRegistry(redisClient.Client, c.Config.OTP.TTL)
		c.SessionRegistry = registry.NewRedisSessionRegistry(redisClient.Client)
		log.Println("✅ Redis registries")
		return nil
	}

	c.OTPRegistry = registry.NewMemoryOTPRegistry()
	c.SessionRegistry = registry.NewMemorySessionRegistry()
	log.Println("✅ In-memory registries (sessions die with the process)")
	return nil
}

// Cleanup releases resources on shutdown.
func (c *Container) Cleanup() {
	if c.Sweeper != nil {
		c.Sweeper.Shutdown()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close redis client: %v", err)
		}
	}
}
