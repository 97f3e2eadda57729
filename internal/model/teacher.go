package model

import "time"

// Teacher represents a member of the teaching staff.
type Teacher struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	Email      string    `json:"email" gorm:"size:255;not null;uniqueIndex:uniq_teachers_email"`
	Phone      *string   `json:"phone" gorm:"size:32"`
	Department *string   `json:"department" gorm:"size:255"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
