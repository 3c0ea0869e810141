package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	locale "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"

	"portfolio-blog-api/config"
	"portfolio-blog-api/handlers"
	"portfolio-blog-api/helper"
	"portfolio-blog-api/middleware"
	"portfolio-blog-api/repositories"
	"portfolio-blog-api/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		logger.Fatal("uploads dir", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	typeRepo := repositories.NewTypeRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.JWTExpiration)
	userService := services.NewUserService(userRepo)
	tagService := services.NewTagService(tagRepo)
	typeService := services.NewTypeService(typeRepo)
	articleService := services.NewArticleService(articleRepo, tagService)

	seed(cfg, userService, typeService, logger)

	httpHelper := newHTTPHelper(logger, cfg.IsDevelopment())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	articleHandler := handlers.NewArticleHandler(articleService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)
	typeHandler := handlers.NewTypeHandler(typeService, httpHelper)
	userHandler := handlers.NewUserHandler(userService, httpHelper)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadsDir, cfg.UploadBaseURL, httpHelper)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, logger,
		authHandler, articleHandler, tagHandler, typeHandler, userHandler, uploadHandler)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func setupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *handlers.AuthHandler,
	articleHandler *handlers.ArticleHandler,
	tagHandler *handlers.TagHandler,
	typeHandler *handlers.TypeHandler,
	userHandler *handlers.UserHandler,
	uploadHandler *handlers.UploadHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.Static("/uploads", cfg.UploadsDir)

	secret := []byte(cfg.JWTSecret)
	authn := middleware.AuthMiddleware(secret)
	adminOnly := middleware.RequireRole("admin")
	adminOrEditor := middleware.RequireRole("admin", "editor")

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.GetArticles)
			articles.GET("/:slug", articleHandler.GetArticleBySlug)
			articles.POST("", authn, adminOrEditor, articleHandler.CreateArticle)
			articles.PUT("/:id", authn, adminOrEditor, articleHandler.UpdateArticle)
			articles.DELETE("/:id", authn, adminOnly, articleHandler.DeleteArticle)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.GetTags)
			tags.GET("/:id", tagHandler.GetTag)
			tags.POST("", authn, adminOrEditor, tagHandler.CreateTag)
			tags.PUT("/:id", authn, adminOrEditor, tagHandler.UpdateTag)
			tags.DELETE("/:id", authn, adminOnly, tagHandler.DeleteTag)
		}

		types := api.Group("/types")
		{
			types.GET("", typeHandler.GetTypes)
			types.GET("/:id", typeHandler.GetType)
			types.POST("", authn, adminOrEditor, typeHandler.CreateType)
			types.PUT("/:id", authn, adminOrEditor, typeHandler.UpdateType)
			types.DELETE("/:id", authn, adminOnly, typeHandler.DeleteType)
		}

		users := api.Group("/users", authn, adminOnly)
		{
			users.GET("", userHandler.GetUsers)
			users.POST("", userHandler.CreateUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		api.POST("/upload/image", authn, adminOnly, uploadHandler.UploadImage)
	}

	return router
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newHTTPHelper(logger *zap.Logger, development bool) *helper.HTTPHelper {
	en := locale.New()
	uni := ut.New(en, en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		logger.Fatal("validator translations", zap.Error(err))
	}

	return helper.NewHTTPHelper(validate, translator, logger, development)
}

// seed creates the initial admin account and any configured type labels.
// Both are idempotent and failures are non-fatal.
func seed(cfg *config.Config, userService services.UserService, typeService services.TypeService, logger *zap.Logger) {
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if err := userService.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
			logger.Warn("admin seed failed", zap.Error(err))
		}
	}

	if cfg.SeedTypes != "" {
		if err := typeService.EnsureTypes(strings.Split(cfg.SeedTypes, ",")); err != nil {
			logger.Warn("type seed failed", zap.Error(err))
		}
	}
}
