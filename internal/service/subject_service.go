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

// SubjectInput holds the fields of a new subject.
type SubjectInput struct {
	Name      string
	Code      string
	TeacherID *uint
	ClassID   *uint
}

// SubjectPatch holds the fields to change on a subject; nil fields are kept.
type SubjectPatch struct {
	Name      *string
	Code      *string
	TeacherID *uint
	ClassID   *uint
}

// SubjectService handles subject operations.
type SubjectService interface {
	List(ctx context.Context, filter repository.SubjectFilter) ([]model.Subject, error)
	Get(ctx context.Context, id uint) (*model.Subject, error)
	Create(ctx context.Context, in SubjectInput) (*model.Subject, error)
	Update(ctx context.Context, id uint, patch SubjectPatch) (*model.Subject, error)
	Delete(ctx context.Context, id uint) error
}

type subjectService struct {
	repo repository.SubjectRepository
	log  *slog.Logger
}

// NewSubjectService creates a new subject service.
func NewSubjectService(repo repository.SubjectRepository, log *slog.Logger) SubjectService {
	if log == nil {
		log = slog.Default()
	}
	return &subjectService{repo: repo, log: log}
}

func (s *subjectService) List(ctx context.Context, filter repository.SubjectFilter) ([]model.Subject, error) {
	subjects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// Get returns a subject with its teacher and class loaded.
func (s *subjectService) Get(ctx context.Context, id uint) (*model.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrSubjectNotFound, "find subject")
	}
	return subject, nil
}

func (s *subjectService) Create(ctx context.Context, in SubjectInput) (*model.Subject, error) {
	subject := &model.Subject{
		Name:      strings.TrimSpace(in.Name),
		Code:      strings.TrimSpace(in.Code),
		TeacherID: in.TeacherID,
		ClassID:   in.ClassID,
	}
	if err := s.checkCode(ctx, subject.Code, 0); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, writeError(err, apperrors.ErrSubjectCodeExists, "create subject")
	}

	s.log.InfoContext(ctx, "subject created", "subject_id", subject.ID, "code", subject.Code)
	return s.Get(ctx, subject.ID)
}

func (s *subjectService) Update(ctx context.Context, id uint, patch SubjectPatch) (*model.Subject, error) {
	subject, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		subject.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Code != nil {
		code := strings.TrimSpace(*patch.Code)
		if code != subject.Code {
			if err := s.checkCode(ctx, code, subject.ID); err != nil {
				return nil, err
			}
		}
		subject.Code = code
	}
	if patch.TeacherID != nil {
		subject.TeacherID = patch.TeacherID
		subject.Teacher = nil
	}
	if patch.ClassID != nil {
		subject.ClassID = patch.ClassID
		subject.Class = nil
	}

	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, writeError(err, apperrors.ErrSubjectCodeExists, "update subject")
	}
	return s.Get(ctx, subject.ID)
}

func (s *subjectService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, apperrors.ErrSubjectNotFound, "delete subject")
	}
	s.log.InfoContext(ctx, "subject deleted", "subject_id", id)
	return nil
}

func (s *subjectService) checkCode(ctx context.Context, code string, selfID uint) error {
	return ensureUnique(func() (uint, error) {
		sub, err := s.repo.FindByCode(ctx, code)
		if err != nil {
			return 0, err
		}
		return sub.ID, nil
	}, selfID, apperrors.ErrSubjectCodeExists, "check subject code")
}
