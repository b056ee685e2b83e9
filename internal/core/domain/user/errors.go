package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrUserDoesNotExist      = errors.New("user does not exist")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailIsNotConfirmed   = errors.New("email is not confirmed")
	ErrInvalidActionToken    = errors.New("invalid action token")
)
