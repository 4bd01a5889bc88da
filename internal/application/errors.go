package application

import "errors"

// Expected failures services hand back to the handlers, which map them
// onto the 400/401/403/404 taxonomy. Anything else coming out of a
// service is treated as a server error.
var (
	ErrIncompleteData     = errors.New("incomplete data")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	ErrInvalidNoteID  = errors.New("invalid note id")
	ErrInvalidUserID  = errors.New("invalid user id")
	ErrNoteNotFound   = errors.New("note not found")
	ErrForbidden      = errors.New("forbidden")
	ErrTitleRequired  = errors.New("title required")
	ErrDuplicateTitle = errors.New("duplicate title")
	ErrSelfShare      = errors.New("cannot share with same user")
	ErrAlreadyShared  = errors.New("already shared with this user")
	ErrNoResults      = errors.New("no results")
)
