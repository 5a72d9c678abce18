package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cppla/blogapi/utils"
)

var (
	// ErrDuplicateEmail means another user already owns the email address.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrDuplicatePost means another post already uses the title.
	ErrDuplicatePost = errors.New("post title already exists")
	// ErrUserHasPosts means the user cannot be deleted while posts reference it.
	ErrUserHasPosts = errors.New("user still authors posts")
	// ErrUserNotFound matches every NotFoundError about a user.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound matches every NotFoundError about a post.
	ErrPostNotFound = errors.New("post not found")
)

// NotFoundError names the missing resource and the id that was asked for.
// Resource "user" matches ErrUserNotFound and "post" matches ErrPostNotFound.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is lets errors.Is(err, ErrUserNotFound) and errors.Is(err, ErrPostNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	switch target {
	case ErrUserNotFound:
		return e.Resource == "user"
	case ErrPostNotFound:
		return e.Resource == "post"
	}
	return false
}

func userNotFound(id string) error {
	return &NotFoundError{Resource: "user", ID: id}
}

func postNotFound(id string) error {
	return &NotFoundError{Resource: "post", ID: id}
}

// ValidationError lists every rejected field of a request.
type ValidationError struct {
	Fields []utils.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// check validates payload and reports its failures together with any already found.
func check(fields []utils.FieldError, payload interface{}) error {
	more, err := utils.ValidateStruct(payload)
	if err != nil {
		return fmt.Errorf("validate payload: %w", err)
	}
	fields = append(fields, more...)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
