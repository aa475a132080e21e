// Package auth provides authentication for the application.
//
// Identity is established through a server-side session referenced by an
// opaque cookie. The session outlives nothing beyond its store row: login and
// registration write the user id claim, logout or expiry removes it.
//
// # Configuration
//
//	AUTH_SESSION_LIFETIME=24h   # Session duration
//	AUTH_BCRYPT_COST=10         # bcrypt cost factor
//	AUTH_SECURE_COOKIES=false   # Set true behind HTTPS
//
// # Usage
//
// Initialize authentication in entrypoint:
//
//	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
//	service := auth.NewService(userRepo, hasher)
//	sessions := auth.NewSessionManager(sqlDB, cfg.Auth)
//	middleware := auth.NewMiddleware(service, sessions)
//
//	router.Use(sessions.LoadAndSave())
//	protected.Use(middleware.RequireAuth())
//
// Extract user in handlers:
//
//	userID := auth.GetUserID(c)
package auth
