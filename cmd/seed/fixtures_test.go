package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolapi/internal/config"
	apperrors "schoolapi/internal/errors"
	"schoolapi/internal/model"
)

const fixtureJSON = `{
	"classes": [{"name": "Grade 5", "section": "A"}],
	"teachers": [{"name": "Ms. Frizzle", "email": "frizzle@school.edu"}],
	"students": [{"name": "Arnold", "email": "arnold@school.edu", "class": "Grade 5"}],
	"subjects": [{"name": "Science", "code": "SCI-5", "teacher_email": "frizzle@school.edu", "class": "Grade 5"}]
}`

func TestLoadFixtures_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtureJSON), 0o600))

	f, err := loadFixtures(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, f.Classes, 1)
	assert.Equal(t, "Grade 5", f.Classes[0].Name)
	require.NotNil(t, f.Classes[0].Section)
	assert.Equal(t, "A", *f.Classes[0].Section)
	assert.Nil(t, f.Classes[0].RoomNumber)
	require.Len(t, f.Subjects, 1)
	assert.Equal(t, "frizzle@school.edu", f.Subjects[0].TeacherEmail)
}

func TestLoadFixtures_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/seed.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(fixtureJSON))
	}))
	defer srv.Close()

	f, err := loadFixtures(context.Background(), srv.URL+"/seed.json")
	require.NoError(t, err)
	assert.Len(t, f.Students, 1)

	_, err = loadFixtures(context.Background(), srv.URL+"/missing.json")
	assert.Error(t, err)
}

func TestLoadFixtures_Invalid(t *testing.T) {
	_, err := loadFixtures(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = loadFixtures(context.Background(), path)
	assert.Error(t, err)
}

func TestSeedStats_Record(t *testing.T) {
	var stats seedStats

	assert.NoError(t, stats.record(nil, apperrors.ErrEmailExists))
	assert.NoError(t, stats.record(apperrors.ErrEmailExists, apperrors.ErrEmailExists))
	boom := errors.New("boom")
	assert.Equal(t, boom, stats.record(boom, apperrors.ErrEmailExists))

	assert.Equal(t, 1, stats.created)
	assert.Equal(t, 1, stats.skipped)
}

func TestLookupRef(t *testing.T) {
	ids := map[string]uint{"Grade 5": 3}

	id, err := lookupRef(ids, "", "class")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = lookupRef(ids, "Grade 5", "class")
	require.NoError(t, err)
	assert.Equal(t, uint(3), *id)

	_, err = lookupRef(ids, "Grade 9", "class")
	assert.EqualError(t, err, `unknown class "Grade 9"`)
}

type stubAuthService struct {
	registerErr error
	calls       int
}

func (s *stubAuthService) Register(_ context.Context, username, email, fullName, _ string) (*model.User, string, error) {
	s.calls++
	if s.registerErr != nil {
		return nil, "", s.registerErr
	}
	return &model.User{ID: 1, Username: username, Email: email, FullName: fullName}, "tok", nil
}

func (s *stubAuthService) Login(context.Context, string, string) (*model.User, string, error) {
	return nil, "", errors.New("not used")
}

func (s *stubAuthService) CurrentUser(context.Context, string) (*model.User, error) {
	return nil, errors.New("not used")
}

func (s *stubAuthService) Logout(context.Context, string) error { return nil }

func (s *stubAuthService) ChangePassword(context.Context, uint, string, string) error { return nil }

func TestSeedAdmin(t *testing.T) {
	admin := adminAccount{Username: "admin", Email: "admin@school.local", Password: "admin123"}

	ok := &stubAuthService{}
	assert.NoError(t, seedAdmin(context.Background(), ok, admin))
	assert.Equal(t, 1, ok.calls)

	existing := &stubAuthService{registerErr: apperrors.ErrUsernameTaken}
	assert.NoError(t, seedAdmin(context.Background(), existing, admin))

	failing := &stubAuthService{registerErr: apperrors.ErrPasswordTooShort}
	assert.ErrorIs(t, seedAdmin(context.Background(), failing, admin), apperrors.ErrPasswordTooShort)
}

func TestRun_ReturnsSetupErrors(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{DBDriver: "sqlite", DatabaseDSN: "school.db"}

	err := run(context.Background(), cfg, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database init")
}
