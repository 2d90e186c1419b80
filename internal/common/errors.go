package common

import "errors"

var (
	// ErrInvalidToken reports a missing or malformed session token.
	ErrInvalidToken = errors.New("invalid token")

	ErrTokenExpired = errors.New("token expired")

	// ErrCorruptSession means the persisted session could not be decoded.
	ErrCorruptSession = errors.New("corrupt session")
)
