package user

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrAlreadyExists      = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and include a letter and a number")
	ErrDeviceLimit        = errors.New("maximum device limit reached")
	ErrDeviceNotFound     = errors.New("device not found")
)
