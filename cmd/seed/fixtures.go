package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	apperrors "schoolapi/internal/errors"
	"schoolapi/internal/service"
)

// Fixtures is the layout of a seed file. Students and subjects refer to
// classes by name and to teachers by email.
type Fixtures struct {
	Classes []struct {
		Name       string  `json:"name"`
		Section    *string `json:"section"`
		RoomNumber *string `json:"room_number"`
	} `json:"classes"`
	Teachers []struct {
		Name       string  `json:"name"`
		Email      string  `json:"email"`
		Phone      *string `json:"phone"`
		Department *string `json:"department"`
	} `json:"teachers"`
	Students []struct {
		Name  string  `json:"name"`
		Email string  `json:"email"`
		Phone *string `json:"phone"`
		Class string  `json:"class"`
	} `json:"students"`
	Subjects []struct {
		Name         string `json:"name"`
		Code         string `json:"code"`
		TeacherEmail string `json:"teacher_email"`
		Class        string `json:"class"`
	} `json:"subjects"`
}

// loadFixtures reads fixtures from a local path or an http(s) URL.
func loadFixtures(ctx context.Context, source string) (*Fixtures, error) {
	var body io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch fixtures: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch fixtures: status code %d", resp.StatusCode)
		}
		body = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open fixtures: %w", err)
		}
		body = f
	}
	defer body.Close()

	var fixtures Fixtures
	if err := json.NewDecoder(body).Decode(&fixtures); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &fixtures, nil
}

type seedStats struct {
	created int
	skipped int
}

// record counts err as a created or already seeded record, or returns it.
func (s *seedStats) record(err error, duplicate error) error {
	switch {
	case err == nil:
		s.created++
	case errors.Is(err, duplicate):
		s.skipped++
	default:
		return err
	}
	return nil
}

type seeder struct {
	classes  service.ClassService
	teachers service.TeacherService
	students service.StudentService
	subjects service.SubjectService
}

// run creates every fixture that does not exist yet. It is safe to run twice.
func (s *seeder) run(ctx context.Context, f *Fixtures) (seedStats, error) {
	var stats seedStats

	for _, c := range f.Classes {
		_, err := s.classes.Create(ctx, service.ClassInput{Name: c.Name, Section: c.Section, RoomNumber: c.RoomNumber})
		if err := stats.record(err, apperrors.ErrClassNameExists); err != nil {
			return stats, fmt.Errorf("class %q: %w", c.Name, err)
		}
	}
	for _, t := range f.Teachers {
		_, err := s.teachers.Create(ctx, service.TeacherInput{Name: t.Name, Email: t.Email, Phone: t.Phone, Department: t.Department})
		if err := stats.record(err, apperrors.ErrEmailExists); err != nil {
			return stats, fmt.Errorf("teacher %q: %w", t.Email, err)
		}
	}

	classIDs, err := s.classIDs(ctx)
	if err != nil {
		return stats, err
	}
	teacherIDs, err := s.teacherIDs(ctx)
	if err != nil {
		return stats, err
	}

	for _, st := range f.Students {
		classID, err := lookupRef(classIDs, st.Class, "class")
		if err != nil {
			return stats, fmt.Errorf("student %q: %w", st.Email, err)
		}
		_, err = s.students.Create(ctx, service.StudentInput{Name: st.Name, Email: st.Email, Phone: st.Phone, ClassID: classID})
		if err := stats.record(err, apperrors.ErrEmailExists); err != nil {
			return stats, fmt.Errorf("student %q: %w", st.Email, err)
		}
	}
	for _, sub := range f.Subjects {
		classID, err := lookupRef(classIDs, sub.Class, "class")
		if err != nil {
			return stats, fmt.Errorf("subject %q: %w", sub.Code, err)
		}
		teacherID, err := lookupRef(teacherIDs, sub.TeacherEmail, "teacher")
		if err != nil {
			return stats, fmt.Errorf("subject %q: %w", sub.Code, err)
		}
		_, err = s.subjects.Create(ctx, service.SubjectInput{Name: sub.Name, Code: sub.Code, TeacherID: teacherID, ClassID: classID})
		if err := stats.record(err, apperrors.ErrSubjectCodeExists); err != nil {
			return stats, fmt.Errorf("subject %q: %w", sub.Code, err)
		}
	}

	return stats, nil
}

func (s *seeder) classIDs(ctx context.Context) (map[string]uint, error) {
	classes, err := s.classes.List(ctx, "")
	if err != nil {
		return nil, err
	}
	ids := make(map[string]uint, len(classes))
	for _, c := range classes {
		ids[c.Name] = c.ID
	}
	return ids, nil
}

func (s *seeder) teacherIDs(ctx context.Context) (map[string]uint, error) {
	teachers, err := s.teachers.List(ctx, "")
	if err != nil {
		return nil, err
	}
	ids := make(map[string]uint, len(teachers))
	for _, t := range teachers {
		ids[t.Email] = t.ID
	}
	return ids, nil
}

// lookupRef resolves an optional reference by key. An empty key means none.
func lookupRef(ids map[string]uint, key, what string) (*uint, error) {
	if key == "" {
		return nil, nil
	}
	id, ok := ids[key]
	if !ok {
		return nil, fmt.Errorf("unknown %s %q", what, key)
	}
	return &id, nil
}
