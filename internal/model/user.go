package model

import "time"

// Role values stored on User and carried in session token claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. Email is stored lowercased; the
// unique index is the backstop against concurrent duplicate registration.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FullName     string    `json:"fullName" gorm:"size:255;not null"`
	Role         string    `json:"role" gorm:"size:50;default:'user'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
