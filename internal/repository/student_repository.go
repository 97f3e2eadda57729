package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolapi/internal/model"
)

// StudentFilter narrows Student listings. Zero values match everything.
type StudentFilter struct {
	Search  string
	ClassID *uint
}

// StudentRepository defines student persistence operations.
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Student, error)
	FindByEmail(ctx context.Context, email string) (*model.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]model.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// Create creates a new student. The Class relation is never written.
func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(student).Error)
}

// Update updates an existing student.
func (r *studentRepository) Update(ctx context.Context, student *model.Student) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(student).Error)
}

// Delete removes a student.
func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.Student{}, id)
}

// FindByID finds a student by ID with its class loaded.
func (r *studentRepository) FindByID(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Preload("Class").First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByEmail finds a student by email.
func (r *studentRepository) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// List returns students ordered by id with their classes loaded.
func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]model.Student, error) {
	q := r.db.WithContext(ctx).Preload("Class").Order("id")
	q = whereSearch(q, filter.Search, "name", "email")
	if filter.ClassID != nil {
		q = q.Where("class_id = ?", *filter.ClassID)
	}

	var students []model.Student
	if err := q.Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}
