package routes

import (
	"net/http"

	_ "census-otp-service/docs"
	"census-otp-service/internal/app/controllers"
	"census-otp-service/internal/app/middleware"
	"census-otp-service/internal/domain/services"
	"census-otp-service/internal/domain/services/container"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter builds the gin engine with every route registered
func SetupRouter(container *container.ServiceContainer) *gin.Engine {
	cfg := container.GetConfig()
	controllers.RegisterValidation()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))
	r.Use(middleware.IPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, container)
	return r
}

func registerRoutes(r *gin.Engine, container *container.ServiceContainer) {
	registerPublicRoutes(r, container)
	registerAuthenticatedRoutes(r, container)
}

func registerPublicRoutes(r *gin.Engine, container *container.ServiceContainer) {
	// Health
	r.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	r.GET("/health", controllers.HandleHealthFunc(container, "ping"))
	r.GET("/health/status", controllers.HandleHealthFunc(container, "status"))

	// OTP login
	r.POST("/generate_otp", controllers.HandleAuthFunc(container, "generateOTP"))
	r.POST("/login", controllers.HandleAuthFunc(container, "login"))

	// Census
	r.POST("/submit_census", controllers.HandleCensusFunc(container, "submitCensus"))
	r.GET("/get_census_data/:user_id",
		middleware.Cache(container.GetCache(), middleware.CacheConfig{
			Expiration: container.GetConfig().CacheTTL,
			Methods:    []string{http.MethodGet},
			KeyFunc:    controllers.CensusCacheKey,
		}),
		controllers.HandleCensusFunc(container, "getCensusData"),
	)
}

func registerAuthenticatedRoutes(r *gin.Engine, container *container.ServiceContainer) {
	jwtService := container.GetService("jwt").(services.InterfaceJWTService)
	authenticated := r.Group("")
	authenticated.Use(middleware.AuthenticateAccount(jwtService))

	authenticated.GET("/account", controllers.HandleAuthFunc(container, "profile"))

	households := authenticated.Group("/households")
	{
		households.POST("", controllers.HandleHouseholdFunc(container, "createHousehold"))
		households.GET("/:id", controllers.HandleHouseholdFunc(container, "getHousehold"))
		households.DELETE("/:id", controllers.HandleHouseholdFunc(container, "deleteHousehold"))
		households.POST("/:id/members", controllers.HandleHouseholdFunc(container, "addMember"))
		households.GET("/:id/members", controllers.HandleHouseholdFunc(container, "getMembers"))
	}
}
