package di

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nukuldhake/Meal-Mate/internal/handler"
	"github.com/nukuldhake/Meal-Mate/internal/metrics"
	"github.com/nukuldhake/Meal-Mate/internal/middleware"
	"github.com/nukuldhake/Meal-Mate/internal/repository"
	"github.com/nukuldhake/Meal-Mate/internal/service"
	"github.com/nukuldhake/Meal-Mate/internal/worker"
	"github.com/nukuldhake/Meal-Mate/pkg/config"
	"github.com/nukuldhake/Meal-Mate/pkg/database"
	"github.com/nukuldhake/Meal-Mate/pkg/logger"
	"github.com/nukuldhake/Meal-Mate/pkg/redis"
)

// Container holds all dependencies of the API
type Container struct {
	// Infrastructure
	DB       database.Pool
	Redis    *redis.Client
	Registry *prometheus.Registry

	// Repositories
	UserRepo       repository.UserRepository
	ResetRepo      repository.PasswordResetRepository
	RecipeRepo     repository.RecipeRepository
	IngredientRepo repository.IngredientRepository
	PantryRepo     repository.PantryRepository
	MealPlanRepo   repository.MealPlanRepository

	// Services
	TokenService    service.TokenService
	AuthService     service.AuthService
	UserService     service.UserService
	RecipeService   service.RecipeService
	SearchService   service.SearchService
	PantryService   service.PantryService
	MealPlanService service.MealPlanService
	AdminService    service.AdminService

	// Workers
	ResetPurgeWorker *worker.ResetPurgeWorker

	Router *gin.Engine
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config *config.Config
	DB     database.Pool
	// Redis is nil when Redis is unavailable; rate limiting and request
	// replay are then skipped
	Redis    *redis.Client
	Notifier service.PasswordResetNotifier
	// HealthChecks are probed by GET /ready
	HealthChecks map[string]handler.HealthChecker
	Log          *logger.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) (*Container, error) {
	appCfg := cfg.Config
	c := &Container{
		DB:       cfg.DB,
		Redis:    cfg.Redis,
		Registry: metrics.NewRegistry(),
	}

	// Initialize repositories
	c.UserRepo = repository.NewPostgresUserRepository(cfg.DB)
	c.ResetRepo = repository.NewPostgresPasswordResetRepository(cfg.DB)
	c.RecipeRepo = repository.NewPostgresRecipeRepository(cfg.DB)
	c.IngredientRepo = repository.NewPostgresIngredientRepository(cfg.DB)
	c.PantryRepo = repository.NewPostgresPantryRepository(cfg.DB)
	c.MealPlanRepo = repository.NewPostgresMealPlanRepository(cfg.DB)

	// Initialize services
	tokens, err := service.NewTokenService(c.UserRepo, &service.TokenServiceConfig{
		Secret:          appCfg.JWT.Secret,
		Algorithm:       appCfg.JWT.Algorithm,
		AccessTokenTTL:  appCfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: appCfg.JWT.RefreshTokenTTL,
		ResetTokenTTL:   appCfg.JWT.ResetTokenTTL,
		Issuer:          appCfg.JWT.Issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build token service: %w", err)
	}
	c.TokenService = tokens
	c.AuthService = service.NewAuthService(
		c.UserRepo,
		c.ResetRepo,
		c.TokenService,
		service.NewBcryptHasher(service.DefaultBcryptCost),
		cfg.Notifier,
	)
	c.UserService = service.NewUserService(c.UserRepo)
	c.RecipeService = service.NewRecipeService(c.RecipeRepo)
	c.SearchService = service.NewSearchService(c.RecipeRepo, c.IngredientRepo)
	c.PantryService = service.NewPantryService(c.PantryRepo)
	c.MealPlanService = service.NewMealPlanService(c.MealPlanRepo)
	c.AdminService = service.NewAdminService(c.UserRepo, c.RecipeRepo)

	c.ResetPurgeWorker = worker.NewResetPurgeWorker(c.ResetRepo, nil)

	// Initialize router
	routerCfg := &handler.RouterConfig{
		ServiceName: appCfg.App.Name,
		Handlers: handler.Handlers{
			Health:   handler.NewHealthHandler(appCfg.App.Name, cfg.HealthChecks),
			Auth:     handler.NewAuthHandler(c.AuthService),
			User:     handler.NewUserHandler(c.UserService),
			Recipe:   handler.NewRecipeHandler(c.RecipeService),
			Search:   handler.NewSearchHandler(c.SearchService),
			Pantry:   handler.NewPantryHandler(c.PantryService),
			MealPlan: handler.NewMealPlanHandler(c.MealPlanService),
			Admin:    handler.NewAdminHandler(c.AdminService),
		},
		Gate:    middleware.NewAuthGate(c.TokenService, c.UserRepo),
		CORS:    middleware.DefaultCORSConfig(appCfg.CORS.AllowedOrigins),
		Log:     cfg.Log,
		Tracing: appCfg.OTel.Enabled,
		Metrics: metrics.Handler(c.Registry),
	}
	if appCfg.RateLimit.Enabled && cfg.Redis != nil {
		routerCfg.Limiter = middleware.NewRateLimiter(cfg.Redis)
		routerCfg.GlobalLimit = middleware.RateLimitConfig{
			Scope:     "global",
			KeyPrefix: appCfg.RateLimit.KeyPrefix,
			Requests:  appCfg.RateLimit.Requests,
			Window:    appCfg.RateLimit.Window,
		}
		routerCfg.StrictLimit = middleware.RateLimitConfig{
			Scope:     "auth",
			KeyPrefix: appCfg.RateLimit.KeyPrefix,
			Requests:  appCfg.RateLimit.StrictRequests,
			Window:    appCfg.RateLimit.StrictWindow,
		}
	}
	if cfg.Redis != nil {
		routerCfg.Idempotency = middleware.NewIdempotency(cfg.Redis, &middleware.IdempotencyConfig{
			KeyPrefix: "mealmate:idem:",
			TTL:       appCfg.Idempotency.TTL,
		})
	}
	c.Router = handler.NewRouter(routerCfg)

	return c, nil
}
