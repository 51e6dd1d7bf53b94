// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// User-related errors
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrPasswordsDoNotMatch = errors.New("passwords do not match")
	ErrInvalidContact      = errors.New("contact must be an email address or a phone number")

	// Session-related errors
	ErrSessionAlreadyActive = errors.New("a session is already active for this user")
	ErrNoActiveSession      = errors.New("no active session found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")

	// Business-related errors
	ErrBusinessNotFound   = errors.New("business not found")
	ErrDuplicateBusiness  = errors.New("a business with the same name, category, country, and city already exists")
	ErrMembershipNotFound = errors.New("user is not associated with this business")
	ErrDuplicateMember    = errors.New("user is already associated with this business")

	// Invitation-code errors
	ErrCodeNotFound          = errors.New("invitation code not found")
	ErrCodeInvalidOrInactive = errors.New("invalid or inactive invitation code")
	ErrCodeSpaceExhausted    = errors.New("unable to generate a unique invitation code")

	// Catalog errors
	ErrCategoryNotFound = errors.New("category not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrLanguageNotFound = errors.New("language not found")
)
