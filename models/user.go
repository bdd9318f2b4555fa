package models

import (
	"time"
)

// User is a player profile. The email and avatar are derived from the
// username at creation; they are never accepted as client input.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:20;not null" json:"username"`
	Email     string    `gorm:"size:255" json:"-"`
	Avatar    string    `gorm:"size:500" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`

	// Deleting a user removes their game history with them.
	Games []Game `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
