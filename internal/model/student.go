package model

import "time"

// Student represents an enrolled student, optionally assigned to a class.
type Student struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null;uniqueIndex:uniq_students_email"`
	Phone     *string   `json:"phone" gorm:"size:32"`
	ClassID   *uint     `json:"class_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Class *Class `json:"-" gorm:"foreignKey:ClassID"`
}

// ClassName returns the name of the assigned class, if it was loaded.
func (s *Student) ClassName() *string {
	if s.Class == nil {
		return nil
	}
	return &s.Class.Name
}
