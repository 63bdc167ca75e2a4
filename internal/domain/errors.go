package domain

import "errors"

// Sentinel errors surfaced by the credential store and authentication flow.
// ErrUserNotFound and ErrBadCredentials are collapsed to a single 401 at the
// HTTP boundary so callers cannot probe for registered usernames.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrBadCredentials    = errors.New("bad credentials")
	ErrDuplicateUsername = errors.New("username already taken")
)
