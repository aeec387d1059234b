package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"reviewhub/database"
	"reviewhub/internal/cache"
	"reviewhub/internal/config"
	"reviewhub/internal/handler"
	"reviewhub/internal/mailer"
	"reviewhub/internal/middleware"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	ratingCache, err := cache.NewRatingCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		log.Fatalf("could not connect to redis: %v", err)
	}
	defer ratingCache.Close()

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.FromEmail,
		})
	} else {
		mail = mailer.NewLogMailer(logger)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, mail, logger, cfg)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, reviewRepo, ratingCache)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, ratingCache)
	commentService := service.NewCommentService(commentRepo, reviewRepo, titleRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	genreHandler := handler.NewGenreHandler(genreService)
	titleHandler := handler.NewTitleHandler(titleService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	commentHandler := handler.NewCommentHandler(commentService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.CORSOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	authRequired := middleware.Authenticate(authService, userRepo)
	adminOnly := middleware.RequireAdmin()

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst))
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/token", authHandler.Token)
		}

		users := v1.Group("/users")
		{
			users.GET("/me", authRequired, userHandler.Me)
			users.PATCH("/me", authRequired, userHandler.UpdateMe)

			users.GET("", authRequired, adminOnly, userHandler.List)
			users.POST("", authRequired, adminOnly, userHandler.Create)
			users.GET("/:username", authRequired, adminOnly, userHandler.Get)
			users.PATCH("/:username", authRequired, adminOnly, userHandler.Update)
			users.DELETE("/:username", authRequired, adminOnly, userHandler.Delete)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", authRequired, adminOnly, categoryHandler.Create)
			categories.DELETE("/:slug", authRequired, adminOnly, categoryHandler.Delete)
		}

		genres := v1.Group("/genres")
		{
			genres.GET("", genreHandler.List)
			genres.POST("", authRequired, adminOnly, genreHandler.Create)
			genres.DELETE("/:slug", authRequired, adminOnly, genreHandler.Delete)
		}

		titles := v1.Group("/titles")
		{
			titles.GET("", titleHandler.List)
			titles.POST("", authRequired, adminOnly, titleHandler.Create)
			titles.GET("/:title_id", titleHandler.Get)
			titles.PATCH("/:title_id", authRequired, adminOnly, titleHandler.Update)
			titles.DELETE("/:title_id", authRequired, adminOnly, titleHandler.Delete)

			reviews := titles.Group("/:title_id/reviews")
			{
				reviews.GET("", reviewHandler.List)
				reviews.POST("", authRequired, reviewHandler.Create)
				reviews.GET("/:review_id", reviewHandler.Get)
				reviews.PATCH("/:review_id", authRequired, reviewHandler.Update)
				reviews.DELETE("/:review_id", authRequired, reviewHandler.Delete)

				comments := reviews.Group("/:review_id/comments")
				{
					comments.GET("", commentHandler.List)
					comments.POST("", authRequired, commentHandler.Create)
					comments.GET("/:comment_id", commentHandler.Get)
					comments.PATCH("/:comment_id", authRequired, commentHandler.Update)
					comments.DELETE("/:comment_id", authRequired, commentHandler.Delete)
				}
			}
		}
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server starting", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] || allowed["*"] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
