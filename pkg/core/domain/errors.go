package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidContent = errors.New("invalid content")

	// Editor workflow
	ErrNoDraft      = errors.New("no draft in progress")
	ErrNotConfirmed = errors.New("delete requires confirmation")
	ErrSingleton    = errors.New("operation not supported for singleton content")

	// Admin gate
	ErrLocked            = errors.New("admin surface is locked")
	ErrInvalidAccessCode = errors.New("invalid access code")

	ErrStepBlocked    = errors.New("booking step is not complete")
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message is too long")
)
