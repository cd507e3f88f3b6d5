package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nukuldhake/Meal-Mate/internal/middleware"
	"github.com/nukuldhake/Meal-Mate/pkg/logger"
	"github.com/nukuldhake/Meal-Mate/pkg/telemetry"
)

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	User     *UserHandler
	Recipe   *RecipeHandler
	Search   *SearchHandler
	Pantry   *PantryHandler
	MealPlan *MealPlanHandler
	Admin    *AdminHandler
}

// RouterConfig holds everything NewRouter wires together
type RouterConfig struct {
	ServiceName string
	Handlers    Handlers
	Gate        *middleware.AuthGate
	// Limiter is nil when rate limiting is disabled
	Limiter     *middleware.RateLimiter
	GlobalLimit middleware.RateLimitConfig
	StrictLimit middleware.RateLimitConfig
	// Idempotency is nil when no replay store is available
	Idempotency *middleware.Idempotency
	CORS        middleware.CORSConfig
	Log         *logger.Logger
	Tracing     bool
	// Metrics serves GET /metrics when set
	Metrics http.Handler
}

// NewRouter builds the gin engine with middleware and all API routes
func NewRouter(cfg *RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	if cfg.Tracing {
		router.Use(telemetry.TracingMiddleware(cfg.ServiceName))
	}
	router.Use(middleware.Metrics())
	router.Use(middleware.Logger(cfg.Log))
	router.Use(middleware.CORS(cfg.CORS))

	h := cfg.Handlers
	router.GET("/health", h.Health.Health)
	router.GET("/ready", h.Health.Ready)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	strict := func(c *gin.Context) { c.Next() }
	v1 := router.Group("/api/v1")
	if cfg.Limiter != nil {
		v1.Use(cfg.Limiter.Limit(cfg.GlobalLimit))
		strict = cfg.Limiter.Limit(cfg.StrictLimit)
	}

	idempotent := func(c *gin.Context) { c.Next() }
	if cfg.Idempotency != nil {
		idempotent = cfg.Idempotency.Guard()
	}

	required := cfg.Gate.RequireAuth()
	optional := cfg.Gate.OptionalAuth()

	auth := v1.Group("/auth")
	{
		auth.POST("/register", strict, h.Auth.Register)
		auth.POST("/login", strict, h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", required, h.Auth.Logout)
		auth.POST("/forgot-password", strict, h.Auth.ForgotPassword)
		auth.POST("/reset-password", strict, h.Auth.ResetPassword)
		auth.POST("/verify-token", h.Auth.VerifyToken)
		auth.GET("/me", required, h.Auth.Me)
	}

	users := v1.Group("/users")
	{
		users.GET("/me", required, h.User.GetMe)
		users.PUT("/me", required, h.User.UpdateMe)
		users.GET("/:id", h.User.GetPublic)
	}

	recipes := v1.Group("/recipes")
	{
		recipes.GET("", optional, h.Recipe.List)
		recipes.GET("/favorites", required, h.Recipe.Favorites)
		recipes.GET("/cuisines/list", h.Recipe.Cuisines)
		recipes.GET("/ingredients/search", h.Search.Ingredients)
		recipes.GET("/:id", optional, h.Recipe.Get)
		recipes.POST("/:id/favorite", required, h.Recipe.ToggleFavorite)
		recipes.POST("/:id/rate", required, h.Recipe.Rate)
	}

	search := v1.Group("/search")
	{
		search.GET("/recipes", h.Search.Recipes)
		search.GET("/recipes/by-pantry", optional, h.Search.RecipesByPantry)
		search.GET("/ingredients", h.Search.Ingredients)
	}

	pantry := v1.Group("/pantry", required)
	{
		pantry.GET("/items", h.Pantry.ListItems)
		pantry.POST("/items", idempotent, h.Pantry.AddItem)
		pantry.PUT("/items/:id", h.Pantry.UpdateItem)
		pantry.DELETE("/items/:id", h.Pantry.DeleteItem)
		pantry.GET("/stats", h.Pantry.Stats)
	}

	plans := v1.Group("/meal-plans", required)
	{
		plans.GET("", h.MealPlan.List)
		plans.POST("", idempotent, h.MealPlan.Create)
		plans.GET("/:id", h.MealPlan.Get)
		plans.POST("/:id/items", idempotent, h.MealPlan.AddItem)
		plans.DELETE("/:id", h.MealPlan.Delete)
	}

	admin := v1.Group("/admin", cfg.Gate.RequireAdmin())
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.PATCH("/users/:id/status", h.Admin.SetUserStatus)
		admin.PATCH("/users/:id/role", h.Admin.SetUserRole)
		admin.POST("/recipes", h.Admin.CreateRecipe)
		admin.PUT("/recipes/:id", h.Admin.UpdateRecipe)
		admin.DELETE("/recipes/:id", h.Admin.DeleteRecipe)
	}

	return router
}
