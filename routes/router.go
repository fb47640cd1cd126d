package routes

import (
	"net/http"

	"docman/cache"
	"docman/config"
	"docman/handlers"
	"docman/helper"
	"docman/middleware"
	"docman/repositories"
	"docman/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the wired HTTP surface together with the services that background
// jobs need.
type App struct {
	Router    *gin.Engine
	Blacklist services.BlacklistService
}

// Setup wires repositories, services and handlers and registers every route.
func Setup(cfg *config.Config, db *gorm.DB, tokenCache cache.TokenCache, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	access := helper.NewAccessControl(cfg.AdminRoleID)
	httpHelper := helper.NewHTTPHelper(log)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	blacklistRepo := repositories.NewBlacklistRepository(db)

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWT)
	blacklistService := services.NewBlacklistService(blacklistRepo, tokenCache, log)
	authService := services.NewAuthService(userRepo, tokenService, blacklistService, services.AuthOptions{
		DefaultRoleID: cfg.DefaultRoleID,
	}, log)
	userService := services.NewUserService(userRepo, documentRepo, roleRepo, access, log)
	documentService := services.NewDocumentService(documentRepo, access, log)
	roleService := services.NewRoleService(roleRepo, access, cfg.DefaultRoleID, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	userHandler := handlers.NewUserHandler(userService, httpHelper)
	documentHandler := handlers.NewDocumentHandler(documentService, httpHelper)
	roleHandler := handlers.NewRoleHandler(roleService, httpHelper)

	metrics := middleware.NewMetrics(prometheus.NewRegistry())

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log), metrics.Middleware())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, access-token")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", metrics.Handler())

	// Public routes
	router.POST("/users", authHandler.Register)
	router.POST("/users/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)
	router.POST("/logout", authHandler.Logout)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenService, blacklistService, authService, httpHelper))
	{
		protected.GET("/profile", authHandler.GetProfile)

		users := protected.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/search", userHandler.SearchUsers)
			users.GET("/search/:term", userHandler.SearchUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.GET("/:id/documents", userHandler.GetUserDocuments)
		}

		documents := protected.Group("/documents")
		{
			documents.POST("", documentHandler.CreateDocument)
			documents.GET("", documentHandler.GetDocuments)
			documents.GET("/search", documentHandler.SearchDocuments)
			documents.GET("/search/:term", documentHandler.SearchDocuments)
			documents.GET("/:id", documentHandler.GetDocument)
			documents.PUT("/:id", documentHandler.UpdateDocument)
			documents.DELETE("/:id", documentHandler.DeleteDocument)
		}

		roles := protected.Group("/roles")
		roles.Use(middleware.RequireAdmin(access, httpHelper))
		{
			roles.POST("", roleHandler.CreateRole)
			roles.GET("", roleHandler.GetRoles)
			roles.GET("/:id", roleHandler.GetRole)
			roles.PUT("/:id", roleHandler.UpdateRole)
			roles.DELETE("/:id", roleHandler.DeleteRole)
		}
	}

	return &App{Router: router, Blacklist: blacklistService}
}
