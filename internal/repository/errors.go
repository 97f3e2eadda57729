package repository

import (
	"errors"
	"strings"

	"schoolapi/internal/db"
)

var (
	// ErrDuplicate is returned when an insert or update violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
	// ErrMissingReference is returned when a foreign key points at a missing row.
	ErrMissingReference = errors.New("referenced record does not exist")

	// ErrUsernameExists is returned when a user insert collides on username.
	ErrUsernameExists = errors.New("username already exists")
	// ErrEmailExists is returned when a user insert collides on email.
	ErrEmailExists = errors.New("email already exists")
)

// translate converts driver constraint errors into repository errors and
// passes everything else through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := db.DuplicateKey(err); ok {
		return errors.Join(ErrDuplicate, err)
	}
	if db.IsForeignKeyViolation(err) {
		return errors.Join(ErrMissingReference, err)
	}
	return err
}

// translateUser is translate with the violated user index resolved to a
// specific error.
func translateUser(err error) error {
	key, ok := db.DuplicateKey(err)
	if !ok {
		return translate(err)
	}
	if strings.Contains(key, "uniq_users_email") {
		return errors.Join(ErrEmailExists, err)
	}
	return errors.Join(ErrUsernameExists, err)
}
