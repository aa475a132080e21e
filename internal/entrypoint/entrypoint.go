package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avasiliev/userbase/internal/auth"
	"github.com/avasiliev/userbase/internal/config"
	"github.com/avasiliev/userbase/internal/database"
	"github.com/avasiliev/userbase/internal/database/users"
	http_controllers "github.com/avasiliev/userbase/internal/http"
	"github.com/avasiliev/userbase/internal/maintenance"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down within
// the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the maintenance sweeper)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting userbase v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	sqlDB, err := db.SQLDB()
	if err != nil {
		log.Fatalf("Failed to access database handle: %v", err)
	}

	usersRepo := users.NewRepository(db.DB)
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	authService := auth.NewService(usersRepo, hasher)
	sessionManager := auth.NewSessionManager(sqlDB, cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService, sessionManager)

	sweeper := maintenance.NewSweeper(db, usersRepo, cfg.Maintenance)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("Failed to start maintenance sweeper: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		AuthService:    authService,
		SessionManager: sessionManager,
		AuthMiddleware: authMiddleware,
		UserStore:      usersRepo,
		Hasher:         hasher,
		Version:        version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		sweeper.Stop()
	})
}
