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

// StudentInput holds the fields of a new student.
type StudentInput struct {
	Name    string
	Email   string
	Phone   *string
	ClassID *uint
}

// StudentPatch holds the fields to change on a student; nil fields are kept.
type StudentPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	ClassID *uint
}

// StudentService handles student operations.
type StudentService interface {
	List(ctx context.Context, filter repository.StudentFilter) ([]model.Student, error)
	Get(ctx context.Context, id uint) (*model.Student, error)
	Create(ctx context.Context, in StudentInput) (*model.Student, error)
	Update(ctx context.Context, id uint, patch StudentPatch) (*model.Student, error)
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	repo   repository.StudentRepository
	phones *PhoneNormalizer
	log    *slog.Logger
}

// NewStudentService creates a new student service.
func NewStudentService(repo repository.StudentRepository, phones *PhoneNormalizer, log *slog.Logger) StudentService {
	if phones == nil {
		phones = NewPhoneNormalizer("")
	}
	if log == nil {
		log = slog.Default()
	}
	return &studentService{repo: repo, phones: phones, log: log}
}

func (s *studentService) List(ctx context.Context, filter repository.StudentFilter) ([]model.Student, error) {
	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Get returns a student with its class loaded.
func (s *studentService) Get(ctx context.Context, id uint) (*model.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrStudentNotFound, "find student")
	}
	return student, nil
}

func (s *studentService) Create(ctx context.Context, in StudentInput) (*model.Student, error) {
	phone, err := s.phones.Normalize(in.Phone)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   phone,
		ClassID: in.ClassID,
	}
	if err := s.checkEmail(ctx, student.Email, 0); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, student); err != nil {
		return nil, writeError(err, apperrors.ErrEmailExists, "create student")
	}

	s.log.InfoContext(ctx, "student created", "student_id", student.ID)
	return s.Get(ctx, student.ID)
}

func (s *studentService) Update(ctx context.Context, id uint, patch StudentPatch) (*model.Student, error) {
	student, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		student.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email != student.Email {
			if err := s.checkEmail(ctx, email, student.ID); err != nil {
				return nil, err
			}
		}
		student.Email = email
	}
	if patch.Phone != nil {
		phone, err := s.phones.Normalize(patch.Phone)
		if err != nil {
			return nil, err
		}
		student.Phone = phone
	}
	if patch.ClassID != nil {
		student.ClassID = patch.ClassID
		student.Class = nil
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, writeError(err, apperrors.ErrEmailExists, "update student")
	}
	return s.Get(ctx, student.ID)
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, apperrors.ErrStudentNotFound, "delete student")
	}
	s.log.InfoContext(ctx, "student deleted", "student_id", id)
	return nil
}

func (s *studentService) checkEmail(ctx context.Context, email string, selfID uint) error {
	return ensureUnique(func() (uint, error) {
		st, err := s.repo.FindByEmail(ctx, email)
		if err != nil {
			return 0, err
		}
		return st.ID, nil
	}, selfID, apperrors.ErrEmailExists, "check student email")
}
