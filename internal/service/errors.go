package service

import "errors"

var (
	// ErrMissingField indicates a required registration or login field is blank.
	ErrMissingField = errors.New("missing required field")
	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong = errors.New("password is too long")
	// ErrEmailInUse is returned when registering with an email that already exists.
	ErrEmailInUse = errors.New("email already in use")
	// ErrUsernameInUse is returned when registering with a username that already exists.
	ErrUsernameInUse = errors.New("username already in use")
	// ErrUserNotFound indicates no user matches the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrIncorrectPassword indicates the password does not match the stored hash.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrSongNotFound indicates no song matches the given id.
	ErrSongNotFound = errors.New("song not found")
	// ErrEmptyUpload is returned for uploads without any bytes.
	ErrEmptyUpload = errors.New("uploaded file is empty")
	// ErrUploadTooLarge is returned when an upload exceeds the configured limit.
	ErrUploadTooLarge = errors.New("uploaded file is too large")
)
