package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values stored in users.role.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"-"`
	Username         string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email            string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName        string    `gorm:"size:150" json:"first_name"`
	LastName         string    `gorm:"size:150" json:"last_name"`
	Bio              string    `gorm:"type:text" json:"bio"`
	Role             string    `gorm:"size:16;default:'user';not null" json:"role"`
	ConfirmationCode string    `gorm:"size:150" json:"-"` // emailed secret, never serialized
	IsSuperuser      bool      `gorm:"default:false;not null" json:"-"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

// IsAdmin reports whether the user holds admin powers. Superusers count
// as admins regardless of the stored role.
func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin || user.IsSuperuser
}

// IsModerator reports whether the user holds the moderator role.
func (user *User) IsModerator() bool {
	return user.Role == RoleModerator
}

func (User) TableName() string {
	return "users"
}
