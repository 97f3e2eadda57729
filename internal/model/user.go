package model

import "time"

// User represents an account that can authenticate against the API.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:150;not null;uniqueIndex:uniq_users_username"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex:uniq_users_email"`
	FullName     string    `json:"full_name" gorm:"size:255"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null"`
	Active       bool      `json:"is_active" gorm:"column:is_active;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
