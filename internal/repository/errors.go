package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned by UserRepository.Create on a duplicate email.
	ErrEmailTaken = errors.New("email already taken")
	// ErrUsernameTaken is returned by UserRepository.Create on a duplicate username.
	ErrUsernameTaken = errors.New("username already taken")
)
