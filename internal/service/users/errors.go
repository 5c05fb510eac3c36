package users

import (
	"errors"
)

var (
	ErrInvalidInput       = errors.New("invalid user input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
