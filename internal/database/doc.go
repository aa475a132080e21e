// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, sessions table
//	└── users/           # User account CRUD operations
//
// Each sub-package provides a Repository type with domain-specific
// operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./userbase.db")
//
//	// Create domain-specific repositories
//	usersRepo := users.NewRepository(db.DB)
//
//	// Use repositories
//	user, err := usersRepo.GetByEmail("alice@example.com")
//
// The sessions table created here is owned by the scs session store; the
// application only touches it through the store and the maintenance sweeper.
package database
