package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminUser accounts are seeded with MustSetPassword true and pick their
// password on first login.
type AdminUser struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email           string    `gorm:"uniqueIndex;type:varchar(255)" json:"email"`
	PasswordHash    string    `json:"-"`
	MustSetPassword bool      `gorm:"default:true" json:"mustSetPassword"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (a *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
