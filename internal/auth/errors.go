package auth

import "errors"

var (
	// ErrDuplicateIdentity means the email is already registered.
	ErrDuplicateIdentity = errors.New("email already registered")

	// ErrInvalidCredentials covers every login failure: unknown email, wrong
	// password, or a disabled account. Deliberately one error so responses
	// cannot be used to enumerate users.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken: the presented value matches no stored session.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken: the session exists but its expiry has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrUserInactive: the session is live but its user no longer is.
	ErrUserInactive = errors.New("user inactive")
)
