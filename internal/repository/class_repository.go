package repository

import (
	"context"

	"gorm.io/gorm"

	"schoolapi/internal/model"
)

// ClassRepository defines class persistence operations.
type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	Update(ctx context.Context, class *model.Class) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Class, error)
	FindByName(ctx context.Context, name string) (*model.Class, error)
	List(ctx context.Context, search string) ([]model.Class, error)
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository creates a new class repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

// Create creates a new class.
func (r *classRepository) Create(ctx context.Context, class *model.Class) error {
	return translate(r.db.WithContext(ctx).Create(class).Error)
}

// Update updates an existing class.
func (r *classRepository) Update(ctx context.Context, class *model.Class) error {
	return translate(r.db.WithContext(ctx).Save(class).Error)
}

// Delete removes a class. Students and subjects referencing it are detached
// by the foreign key.
func (r *classRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &model.Class{}, id)
}

// FindByID finds a class by ID.
func (r *classRepository) FindByID(ctx context.Context, id uint) (*model.Class, error) {
	var class model.Class
	if err := r.db.WithContext(ctx).First(&class, id).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

// FindByName finds a class by its unique name.
func (r *classRepository) FindByName(ctx context.Context, name string) (*model.Class, error) {
	var class model.Class
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&class).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

// List returns classes ordered by id, optionally filtered by name.
func (r *classRepository) List(ctx context.Context, search string) ([]model.Class, error) {
	q := whereSearch(r.db.WithContext(ctx).Order("id"), search, "name")

	var classes []model.Class
	if err := q.Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

// deleteByID deletes the row of model with id, reporting
// gorm.ErrRecordNotFound when nothing was deleted.
func deleteByID(ctx context.Context, db *gorm.DB, model any, id uint) error {
	res := db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
