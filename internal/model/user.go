package model

import "time"

// Roles gating catalog mutation and cross-user history visibility.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the auth service's store.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null;default:'user';index"`
	FullName     string    `json:"full_name" gorm:"size:255"`
	Email        string    `json:"email" gorm:"size:255"`
	PhoneNumber  string    `json:"phone_number" gorm:"size:50"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
