package service

import "errors"

// Sentinel errors that controllers map onto HTTP status codes.
var (
	ErrNotFound           = errors.New("record not found")
	ErrEmailTaken         = errors.New("email address already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("operation not permitted for this account")
	ErrInvalidSubmission  = errors.New("invalid submission")
)
