package entities

import (
	"time"

	"gorm.io/gorm"
)

// User is an account record. The password column only ever holds a bcrypt
// hash; it is excluded from JSON and from list projections at the repository
// level.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string         `gorm:"column:password;size:100" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
