package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two must stay indistinguishable at the response boundary.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidRefreshToken covers bad signature, expiry, revocation and
	// reuse alike.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	ErrUserNotFound = errors.New("user not found")
)
