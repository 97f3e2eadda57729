package repository

import (
	"context"

	"gorm.io/gorm"

	"schoolapi/internal/model"
)

// TeacherRepository defines teacher persistence operations.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	Update(ctx context.Context, teacher *model.Teacher) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Teacher, error)
	FindByEmail(ctx context.Context, email string) (*model.Teacher, error)
	List(ctx context.Context, search string) ([]model.Teacher, error)
}

type teacherRepository struct {
	db *gorm.DB
}

// NewTeacherRepository creates a new teacher repository.
func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

// Create creates a new teacher.
func (r *teacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	return translate(r.db.WithContext(ctx).Create(teacher).Error)
}

// Update updates an existing teacher.
func (r *teacherRepository) Update(ctx context.Context, teacher *model.Teacher) error {
	return translate(r.db.WithContext(ctx).Save(teacher).Error)
}

// Delete removes a teacher. Subjects taught by the teacher are unassigned.
func (r *teacherRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.Teacher{}, id)
}

// FindByID finds a teacher by ID.
func (r *teacherRepository) FindByID(ctx context.Context, id uint) (*model.Teacher, error) {
	var teacher model.Teacher
	if err := r.db.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindByEmail finds a teacher by email.
func (r *teacherRepository) FindByEmail(ctx context.Context, email string) (*model.Teacher, error) {
	var teacher model.Teacher
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&teacher).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

// List returns teachers ordered by id. search matches name, email or department.
func (r *teacherRepository) List(ctx context.Context, search string) ([]model.Teacher, error) {
	q := whereSearch(r.db.WithContext(ctx).Order("id"), search, "name", "email", "department")

	var teachers []model.Teacher
	if err := q.Find(&teachers).Error; err != nil {
		return nil, err
	}
	return teachers, nil
}
