package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/creatorloop/creatorloop-api/adapters/battles"
	"github.com/creatorloop/creatorloop-api/adapters/botcheck"
	"github.com/creatorloop/creatorloop-api/adapters/event"
	httpAdapter "github.com/creatorloop/creatorloop-api/adapters/http"
	"github.com/creatorloop/creatorloop-api/adapters/marketplace"
	"github.com/creatorloop/creatorloop-api/adapters/media_storage"
	"github.com/creatorloop/creatorloop-api/adapters/persistence"
	"github.com/creatorloop/creatorloop-api/adapters/projects"
	authUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/auth"
	invitationUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/invitation"
	mediaUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/media"
	profileUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/profile"
	sectionUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/section"
	statsUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/stats"
	storefrontUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/storefront"
	"github.com/creatorloop/creatorloop-api/internal/config"
	"github.com/creatorloop/creatorloop-api/internal/render"
	"github.com/creatorloop/creatorloop-api/pkg/auth"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
	"github.com/creatorloop/creatorloop-api/pkg/tracing"
)

func main() {
	fmt.Println("Start CreatorLoop API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	if cfg.Tracing.Enabled {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "creatorloop-api")
		if err != nil {
			appLogger.Fatal("cannot init tracer provider", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			tp.Shutdown(ctx)
		}()
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	sectionRepo := persistence.NewPostgresSectionRepo(dbPool, appLogger)
	inviteRepo := persistence.NewPostgresInvitationRepo(dbPool)
	statsRepo := persistence.NewPostgresStatsRepo(dbPool)

	// Shared infrastructure
	cache := persistence.NewRedisCache(redisClient, appLogger)
	inviteLimiter := persistence.NewRedisRateLimiter(redisClient, cfg.Invitations.RateLimitPerHour, time.Hour)
	blockRenderer := render.NewBlockRenderer()

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// External clients
	battlesClient := battles.NewHTTPClient(cfg)
	projectsClient := projects.NewHTTPClient(cfg)
	marketClient := marketplace.NewHTTPClient(cfg)
	botVerifier := botcheck.NewHTTPVerifier(cfg)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	sectionUseCase := sectionUC.NewSectionUseCase(sectionRepo, kafkaClient, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(userRepo, sectionRepo, battlesClient, projectsClient, blockRenderer, cache, appLogger)
	storefrontUseCase := storefrontUC.NewStorefrontUseCase(sectionRepo, marketClient, appLogger)
	invitationUseCase := invitationUC.NewRequestInvitationUseCase(inviteRepo, botVerifier, inviteLimiter, kafkaClient, appLogger)
	statsUseCase := statsUC.NewStatsUseCase(statsRepo, cache, appLogger)
	uploadMediaUseCase := mediaUC.NewUploadMediaUseCase(uploader, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase)
	sectionHandler := httpAdapter.NewSectionHandler(sectionUseCase)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase)
	storefrontHandler := httpAdapter.NewStorefrontHandler(storefrontUseCase)
	invitationHandler := httpAdapter.NewInvitationHandler(invitationUseCase)
	statsHandler := httpAdapter.NewStatsHandler(statsUseCase)
	mediaHandler := httpAdapter.NewMediaHandler(uploadMediaUseCase)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)

	// Setup Gin router
	router := gin.Default()
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	api := router.Group("/api")
	{
		public := api.Group("/")
		{
			public.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
			public.POST("/auth/login", authHandler.Login)
			public.GET("/profiles/:username", profileHandler.GetPublicProfile)
			public.POST("/invitations/request", invitationHandler.RequestInvitation)
			public.GET("/stats", statsHandler.GetPlatformStats)
			public.POST("/checkout/session", storefrontHandler.Checkout)
		}

		me := api.Group("/me")
		me.Use(authMiddleware)
		{
			sections := me.Group("/sections")
			{
				sections.GET("", sectionHandler.ListSections)
				sections.POST("", sectionHandler.AddSection)
				sections.GET("/types", sectionHandler.AvailableTypes)
				sections.PUT("/reorder", sectionHandler.ReorderSections)
				sections.PUT("/:id", sectionHandler.UpdateSection)
				sections.DELETE("/:id", sectionHandler.DeleteSection)
				sections.PUT("/:id/visibility", sectionHandler.ToggleVisibility)
			}

			me.PUT("/social-links", profileHandler.UpdateSocialLinks)
			me.GET("/storefront/offerable", storefrontHandler.ListOfferable)
			me.POST("/storefront/items", storefrontHandler.AddItem)
			me.POST("/media", mediaHandler.UploadMedia)
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
