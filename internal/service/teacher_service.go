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

// TeacherInput holds the fields of a new teacher.
type TeacherInput struct {
	Name       string
	Email      string
	Phone      *string
	Department *string
}

// TeacherPatch holds the fields to change on a teacher; nil fields are kept.
type TeacherPatch struct {
	Name       *string
	Email      *string
	Phone      *string
	Department *string
}

// TeacherService handles teacher operations.
type TeacherService interface {
	List(ctx context.Context, search string) ([]model.Teacher, error)
	Get(ctx context.Context, id uint) (*model.Teacher, error)
	Create(ctx context.Context, in TeacherInput) (*model.Teacher, error)
	Update(ctx context.Context, id uint, patch TeacherPatch) (*model.Teacher, error)
	Delete(ctx context.Context, id uint) error
}

type teacherService struct {
	repo   repository.TeacherRepository
	phones *PhoneNormalizer
	log    *slog.Logger
}

// NewTeacherService creates a new teacher service.
func NewTeacherService(repo repository.TeacherRepository, phones *PhoneNormalizer, log *slog.Logger) TeacherService {
	if phones == nil {
		phones = NewPhoneNormalizer("")
	}
	if log == nil {
		log = slog.Default()
	}
	return &teacherService{repo: repo, phones: phones, log: log}
}

func (s *teacherService) List(ctx context.Context, search string) ([]model.Teacher, error) {
	teachers, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

func (s *teacherService) Get(ctx context.Context, id uint) (*model.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrTeacherNotFound, "find teacher")
	}
	return teacher, nil
}

func (s *teacherService) Create(ctx context.Context, in TeacherInput) (*model.Teacher, error) {
	phone, err := s.phones.Normalize(in.Phone)
	if err != nil {
		return nil, err
	}

	teacher := &model.Teacher{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Phone:      phone,
		Department: trimPtr(in.Department),
	}
	if err := s.checkEmail(ctx, teacher.Email, 0); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, writeError(err, apperrors.ErrEmailExists, "create teacher")
	}

	s.log.InfoContext(ctx, "teacher created", "teacher_id", teacher.ID)
	return teacher, nil
}

func (s *teacherService) Update(ctx context.Context, id uint, patch TeacherPatch) (*model.Teacher, error) {
	teacher, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		teacher.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email != teacher.Email {
			if err := s.checkEmail(ctx, email, teacher.ID); err != nil {
				return nil, err
			}
		}
		teacher.Email = email
	}
	if patch.Phone != nil {
		phone, err := s.phones.Normalize(patch.Phone)
		if err != nil {
			return nil, err
		}
		teacher.Phone = phone
	}
	if patch.Department != nil {
		teacher.Department = trimPtr(patch.Department)
	}

	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, writeError(err, apperrors.ErrEmailExists, "update teacher")
	}
	return teacher, nil
}

func (s *teacherService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, apperrors.ErrTeacherNotFound, "delete teacher")
	}
	s.log.InfoContext(ctx, "teacher deleted", "teacher_id", id)
	return nil
}

func (s *teacherService) checkEmail(ctx context.Context, email string, selfID uint) error {
	return ensureUnique(func() (uint, error) {
		t, err := s.repo.FindByEmail(ctx, email)
		if err != nil {
			return 0, err
		}
		return t.ID, nil
	}, selfID, apperrors.ErrEmailExists, "check teacher email")
}
