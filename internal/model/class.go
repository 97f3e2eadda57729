package model

import "time"

// Class is a school class (a group of students), stored in the classes table.
type Class struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:255;not null;uniqueIndex:uniq_classes_name"`
	Section    *string   `json:"section" gorm:"size:50"`
	RoomNumber *string   `json:"room_number" gorm:"size:50"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName keeps the table name independent of the Go type name.
func (Class) TableName() string {
	return "classes"
}
