package service

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// NotFoundError and AlreadyExistsError are shared by every resource type,
// parameterized by the resource name for messages. Handlers map them to
// 404 and 409 without caring which service raised them.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

type AlreadyExistsError struct {
	Resource string
}

func (e *AlreadyExistsError) Error() string { return e.Resource + " already exists" }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsAlreadyExists(err error) bool {
	var ae *AlreadyExistsError
	return errors.As(err, &ae)
}
