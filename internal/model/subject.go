package model

import "time"

// Subject is a course taught to a class, optionally by a teacher.
type Subject struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Code      string    `json:"code" gorm:"size:50;not null;uniqueIndex:uniq_subjects_code"`
	TeacherID *uint     `json:"teacher_id" gorm:"index"`
	ClassID   *uint     `json:"class_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Teacher *Teacher `json:"-" gorm:"foreignKey:TeacherID"`
	Class   *Class   `json:"-" gorm:"foreignKey:ClassID"`
}

// TeacherName returns the name of the assigned teacher, if it was loaded.
func (s *Subject) TeacherName() *string {
	if s.Teacher == nil {
		return nil
	}
	return &s.Teacher.Name
}

// ClassName returns the name of the assigned class, if it was loaded.
func (s *Subject) ClassName() *string {
	if s.Class == nil {
		return nil
	}
	return &s.Class.Name
}
