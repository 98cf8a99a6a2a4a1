package models

import "errors"

var (
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrDuplicateTitle  = errors.New("title already exists")
	ErrUnknownEmail    = errors.New("no user with that email")
	ErrBadPassword     = errors.New("password does not match")
	ErrUnauthenticated = errors.New("not logged in")
	ErrForbidden       = errors.New("not allowed")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("missing required field")
)
