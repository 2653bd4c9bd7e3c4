package domain

import "errors"

// Domain errors
var (
	// Lookup errors
	ErrUserNotFound         = errors.New("user not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrNewsNotFound         = errors.New("news article not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrSessionNotFound      = errors.New("session not found")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Admission errors
	ErrEventFull         = errors.New("event is at full capacity")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNotRegistered     = errors.New("not registered for this event")

	// Account errors
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")

	// Validation errors
	ErrInvalidCapacity = errors.New("capacity cannot be negative")
	ErrInvalidSchedule = errors.New("event end must be after its start")
)

// IsNotFoundError checks if the error is a not found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrNewsNotFound) ||
		errors.Is(err, ErrRegistrationNotFound)
}

// IsPermissionError checks if the error is an authorization failure.
func IsPermissionError(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsAdmissionError checks if the error is a registration-rule violation.
// These map to 400 at the API boundary: the request was well formed but a
// domain rule rejected it.
func IsAdmissionError(err error) bool {
	return errors.Is(err, ErrEventFull) ||
		errors.Is(err, ErrAlreadyRegistered) ||
		errors.Is(err, ErrNotRegistered)
}

// IsValidationError checks if the error is a malformed-input error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidCapacity) ||
		errors.Is(err, ErrInvalidSchedule)
}
