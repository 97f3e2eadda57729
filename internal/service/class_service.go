package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "schoolapi/internal/errors"
	"schoolapi/internal/model"
	"schoolapi/internal/repository"
)

// ClassInput holds the fields of a new class.
type ClassInput struct {
	Name       string
	Section    *string
	RoomNumber *string
}

// ClassPatch holds the fields to change on a class; nil fields are kept.
type ClassPatch struct {
	Name       *string
	Section    *string
	RoomNumber *string
}

// ClassService handles class operations.
type ClassService interface {
	List(ctx context.Context, search string) ([]model.Class, error)
	Get(ctx context.Context, id uint) (*model.Class, error)
	Create(ctx context.Context, in ClassInput) (*model.Class, error)
	Update(ctx context.Context, id uint, patch ClassPatch) (*model.Class, error)
	Delete(ctx context.Context, id uint) error
}

type classService struct {
	repo repository.ClassRepository
	log  *slog.Logger
}

// NewClassService creates a new class service.
func NewClassService(repo repository.ClassRepository, log *slog.Logger) ClassService {
	if log == nil {
		log = slog.Default()
	}
	return &classService{repo: repo, log: log}
}

func (s *classService) List(ctx context.Context, search string) ([]model.Class, error) {
	classes, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

func (s *classService) Get(ctx context.Context, id uint) (*model.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrClassNotFound, "find class")
	}
	return class, nil
}

func (s *classService) Create(ctx context.Context, in ClassInput) (*model.Class, error) {
	class := &model.Class{
		Name:       strings.TrimSpace(in.Name),
		Section:    trimPtr(in.Section),
		RoomNumber: trimPtr(in.RoomNumber),
	}
	if err := s.checkName(ctx, class.Name, 0); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, class); err != nil {
		return nil, writeError(err, apperrors.ErrClassNameExists, "create class")
	}

	s.log.InfoContext(ctx, "class created", "class_id", class.ID)
	return class, nil
}

func (s *classService) Update(ctx context.Context, id uint, patch ClassPatch) (*model.Class, error) {
	class, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name != class.Name {
			if err := s.checkName(ctx, name, class.ID); err != nil {
				return nil, err
			}
		}
		class.Name = name
	}
	if patch.Section != nil {
		class.Section = trimPtr(patch.Section)
	}
	if patch.RoomNumber != nil {
		class.RoomNumber = trimPtr(patch.RoomNumber)
	}

	if err := s.repo.Update(ctx, class); err != nil {
		return nil, writeError(err, apperrors.ErrClassNameExists, "update class")
	}
	return class, nil
}

func (s *classService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, apperrors.ErrClassNotFound, "delete class")
	}
	s.log.InfoContext(ctx, "class deleted", "class_id", id)
	return nil
}

func (s *classService) checkName(ctx context.Context, name string, selfID uint) error {
	return ensureUnique(func() (uint, error) {
		c, err := s.repo.FindByName(ctx, name)
		if err != nil {
			return 0, err
		}
		return c.ID, nil
	}, selfID, apperrors.ErrClassNameExists, "check class name")
}
