package http

import (
	"github.com/gin-gonic/gin"

	"github.com/avasiliev/userbase/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SessionManager.Cookie.Secure {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// Session middleware must run before any handler touches the session
	router.Use(cfg.SessionManager.LoadAndSave())

	authController := NewAuthController(cfg.AuthService, cfg.SessionManager)
	usersController := NewUsersController(cfg.UserStore, cfg.Hasher)
	health := NewHealthController(cfg.Database, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Auth endpoints
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authController.Register)
		authRoutes.POST("/login", authController.Login)
		authRoutes.POST("/logout", authController.Logout)
		authRoutes.GET("/me", cfg.AuthMiddleware.RequireAuth(), authController.Me)
	}

	// User management endpoints, all behind the session gate
	userRoutes := router.Group("/users")
	userRoutes.Use(cfg.AuthMiddleware.RequireAuth())
	{
		userRoutes.GET("", usersController.List)
		userRoutes.GET("/:id", usersController.Get)
		userRoutes.PUT("/:id", usersController.Update)
		userRoutes.DELETE("/:id", usersController.Delete)
	}

	return router
}
