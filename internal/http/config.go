package http

import (
	"github.com/avasiliev/userbase/internal/auth"
	"github.com/avasiliev/userbase/internal/database"
	"github.com/avasiliev/userbase/internal/database/users"
	"github.com/avasiliev/userbase/internal/entities"
)

// UserStore is the repository surface the user controllers need.
type UserStore interface {
	List() ([]entities.User, error)
	GetByID(id uint) (*entities.User, error)
	Update(id uint, update users.UserUpdate) (*entities.User, error)
	Delete(id uint) error
}

// RouterConfig carries all router dependencies, improving testability and
// reducing parameter count.
type RouterConfig struct {
	Database       *database.Database
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	UserStore      UserStore
	Hasher         *auth.Hasher
	Version        string
}
