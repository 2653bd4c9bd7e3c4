package di

import (
	"github.com/mightcoding/ISSAConnect/internal/config"
	"github.com/mightcoding/ISSAConnect/internal/database"
	"github.com/mightcoding/ISSAConnect/internal/handler"
	"github.com/mightcoding/ISSAConnect/internal/redis"
	"github.com/mightcoding/ISSAConnect/internal/repository"
	"github.com/mightcoding/ISSAConnect/internal/service"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	UserRepo         repository.UserRepository
	SessionRepo      repository.SessionRepository
	NewsRepo         repository.NewsRepository
	EventRepo        repository.EventRepository
	RegistrationRepo repository.RegistrationRepository

	// Services
	AuthService         service.AuthService
	UserService         service.UserService
	NewsService         service.NewsService
	EventService        service.EventService
	RegistrationService service.RegistrationService

	// Handlers
	HealthHandler       *handler.HealthHandler
	AuthHandler         *handler.AuthHandler
	AdminHandler        *handler.AdminHandler
	NewsHandler         *handler.NewsHandler
	EventHandler        *handler.EventHandler
	RegistrationHandler *handler.RegistrationHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB     *database.PostgresDB
	Redis  *redis.Client // optional, sessions fall back to Postgres when nil
	Config *config.Config
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}

	pool := cfg.DB.Pool()

	// Repositories
	c.UserRepo = repository.NewPostgresUserRepository(pool)
	c.NewsRepo = repository.NewPostgresNewsRepository(pool)
	c.EventRepo = repository.NewPostgresEventRepository(pool)
	c.RegistrationRepo = repository.NewPostgresRegistrationRepository(pool)

	if cfg.Redis != nil {
		c.SessionRepo = repository.NewRedisSessionRepository(cfg.Redis)
	} else {
		c.SessionRepo = repository.NewPostgresSessionRepository(pool)
	}

	// Services
	c.AuthService = service.NewAuthService(c.UserRepo, c.SessionRepo, &service.AuthServiceConfig{
		JWTSecret:          cfg.Config.JWT.Secret,
		AccessTokenExpiry:  cfg.Config.JWT.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.Config.JWT.RefreshTokenExpiry,
	})
	c.UserService = service.NewUserService(c.UserRepo)
	c.NewsService = service.NewNewsService(c.NewsRepo, c.UserRepo)
	c.EventService = service.NewEventService(c.EventRepo, c.RegistrationRepo, c.UserRepo)
	c.RegistrationService = service.NewRegistrationService(c.RegistrationRepo, c.EventRepo, c.UserRepo)

	// Handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis, cfg.Config.App.Version)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.AdminHandler = handler.NewAdminHandler(c.UserService)
	c.NewsHandler = handler.NewNewsHandler(c.NewsService)
	c.EventHandler = handler.NewEventHandler(c.EventService)
	c.RegistrationHandler = handler.NewRegistrationHandler(c.RegistrationService)

	return c
}
