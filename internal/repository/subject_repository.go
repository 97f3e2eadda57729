package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolapi/internal/model"
)

// SubjectFilter narrows Subject listings. Zero values match everything.
type SubjectFilter struct {
	Search    string
	TeacherID *uint
	ClassID   *uint
}

// SubjectRepository defines subject persistence operations.
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	Update(ctx context.Context, subject *model.Subject) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Subject, error)
	FindByCode(ctx context.Context, code string) (*model.Subject, error)
	List(ctx context.Context, filter SubjectFilter) ([]model.Subject, error)
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository creates a new subject repository.
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(subject).Error)
}

func (r *subjectRepository) Update(ctx context.Context, subject *model.Subject) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(subject).Error)
}

func (r *subjectRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.Subject{}, id)
}

// FindByID finds a subject by ID with its teacher and class loaded.
func (r *subjectRepository) FindByID(ctx context.Context, id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Class").
		First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) FindByCode(ctx context.Context, code string) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

// List returns subjects ordered by id. search matches name or code.
func (r *subjectRepository) List(ctx context.Context, filter SubjectFilter) ([]model.Subject, error) {
	q := r.db.WithContext(ctx).Preload("Teacher").Preload("Class").Order("id")
	q = whereSearch(q, filter.Search, "name", "code")
	if filter.TeacherID != nil {
		q = q.Where("teacher_id = ?", *filter.TeacherID)
	}
	if filter.ClassID != nil {
		q = q.Where("class_id = ?", *filter.ClassID)
	}

	var subjects []model.Subject
	if err := q.Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}
