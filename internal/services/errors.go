package services

import "errors"

var (
	// ErrDuplicateEmail is returned when registering an email that is taken.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned when login email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthenticated is returned for missing, invalid or expired tokens and
	// for tokens whose user no longer exists.
	ErrUnauthenticated = errors.New("invalid authentication credentials")
	// ErrForbidden is returned when the user lacks the required role.
	ErrForbidden = errors.New("insufficient role")

	// ErrPasswordMismatch is returned when the new password and its
	// confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrWeakPassword is returned when the new password is too short.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	// ErrPasswordTooLong is returned when the password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	// ErrInvalidChallenge covers every failed recovery factor alike.
	ErrInvalidChallenge = errors.New("invalid credentials")

	// ErrCartNotFound is returned when updating a cart that was never created.
	ErrCartNotFound = errors.New("cart not found")
	// ErrInvalidQuantity is returned for quantities below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidInput is returned when a required field is empty.
	ErrInvalidInput = errors.New("invalid input")
)
