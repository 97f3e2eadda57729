package errors

import (
	"errors"
	"net/http"
)

// Duplicate-field messages. The original system used "already taken" and
// "already exists" interchangeably; these are the canonical wordings.
const (
	MsgUsernameTaken   = "username taken"
	MsgEmailRegistered = "email registered"
)

var (
	// ErrUsernameTaken is returned when a registration reuses an existing username.
	ErrUsernameTaken = errors.New(MsgUsernameTaken)
	// ErrEmailRegistered is returned when a registration reuses an existing email.
	ErrEmailRegistered = errors.New(MsgEmailRegistered)
	// ErrPasswordTooShort is returned when a password violates the length policy.
	ErrPasswordTooShort = errors.New("password too short")
	// ErrInvalidCredentials is returned for an unknown username or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDeactivated is returned when an inactive account tries to log in.
	ErrAccountDeactivated = errors.New("account deactivated")
	// ErrNotAuthenticated is returned when a token is missing, unknown or orphaned.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrIncorrectPassword is returned when a password change supplies the wrong current password.
	ErrIncorrectPassword = errors.New("current password is incorrect")
	// ErrPasswordUnchanged is returned when the new password equals the current one.
	ErrPasswordUnchanged = errors.New("new password must differ")

	ErrStudentNotFound = errors.New("student not found")
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrClassNotFound   = errors.New("class not found")
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrEmailExists is returned when a student or teacher email is already in use.
	ErrEmailExists = errors.New("email already registered")
	// ErrClassNameExists is returned when a class name is already in use.
	ErrClassNameExists = errors.New("class name already exists")
	// ErrSubjectCodeExists is returned when a subject code is already in use.
	ErrSubjectCodeExists = errors.New("subject code already exists")
	// ErrInvalidReference is returned when a foreign key points at a missing row.
	ErrInvalidReference = errors.New("referenced record does not exist")
	// ErrInvalidPhone is returned when a phone number cannot be parsed.
	ErrInvalidPhone = errors.New("invalid phone number")
)

// Kind classifies errors by how a caller can recover from them.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindForbidden
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Status returns the HTTP status used for the kind. Conflicts are reported
// as 400 to keep the response contract of the original API.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type classified struct {
	err  error
	kind Kind
	code string
}

var table = []classified{
	{ErrUsernameTaken, KindConflict, "USERNAME_TAKEN"},
	{ErrEmailRegistered, KindConflict, "EMAIL_REGISTERED"},
	{ErrEmailExists, KindConflict, "EMAIL_EXISTS"},
	{ErrClassNameExists, KindConflict, "CLASS_NAME_EXISTS"},
	{ErrSubjectCodeExists, KindConflict, "SUBJECT_CODE_EXISTS"},
	{ErrPasswordTooShort, KindValidation, "PASSWORD_TOO_SHORT"},
	{ErrIncorrectPassword, KindValidation, "INCORRECT_PASSWORD"},
	{ErrPasswordUnchanged, KindValidation, "PASSWORD_UNCHANGED"},
	{ErrInvalidReference, KindValidation, "INVALID_REFERENCE"},
	{ErrInvalidPhone, KindValidation, "INVALID_PHONE"},
	{ErrInvalidCredentials, KindUnauthorized, "INVALID_CREDENTIALS"},
	{ErrNotAuthenticated, KindUnauthorized, "NOT_AUTHENTICATED"},
	{ErrAccountDeactivated, KindForbidden, "ACCOUNT_DEACTIVATED"},
	{ErrStudentNotFound, KindNotFound, "STUDENT_NOT_FOUND"},
	{ErrTeacherNotFound, KindNotFound, "TEACHER_NOT_FOUND"},
	{ErrClassNotFound, KindNotFound, "CLASS_NOT_FOUND"},
	{ErrSubjectNotFound, KindNotFound, "SUBJECT_NOT_FOUND"},
}

func lookup(err error) (classified, bool) {
	for _, c := range table {
		if errors.Is(err, c.err) {
			return c, true
		}
	}
	return classified{}, false
}

// KindOf returns the kind of a domain error, or KindInternal for anything unknown.
func KindOf(err error) Kind {
	if c, ok := lookup(err); ok {
		return c.kind
	}
	return KindInternal
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors never leak
// their message to the client.
func MapErrorToHTTP(err error) *HTTPError {
	if c, ok := lookup(err); ok {
		return NewHTTPError(c.kind.Status(), c.err.Error(), c.code)
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
